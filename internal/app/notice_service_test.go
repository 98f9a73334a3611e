package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"smart-campus/internal/model"
)

type fakeNoticeStore struct {
	notices []model.Notice
	nextID  uint
	failAll bool
}

func newFakeNoticeStore() *fakeNoticeStore {
	return &fakeNoticeStore{nextID: 1}
}

func (s *fakeNoticeStore) Create(notice *model.Notice) error {
	if s.failAll {
		return errors.New("store unavailable")
	}
	notice.ID = s.nextID
	s.nextID++
	s.notices = append(s.notices, *notice)
	return nil
}

func (s *fakeNoticeStore) GetByID(id uint) (*model.Notice, error) {
	for i := range s.notices {
		if s.notices[i].ID == id {
			found := s.notices[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeNoticeStore) ListVisibleToRole(role string) ([]model.Notice, error) {
	if s.failAll {
		return nil, errors.New("store unavailable")
	}
	var result []model.Notice
	for _, n := range s.notices {
		if n.TargetRole == nil || *n.TargetRole == role {
			result = append(result, n)
		}
	}
	return result, nil
}

type fakeFeedCache struct {
	feeds  map[string][]model.Notice
	dirty  map[string]bool
	broken bool
}

func newFakeFeedCache() *fakeFeedCache {
	return &fakeFeedCache{
		feeds: make(map[string][]model.Notice),
		dirty: make(map[string]bool),
	}
}

func (c *fakeFeedCache) GetFeed(_ context.Context, role string) ([]model.Notice, bool, error) {
	if c.broken {
		return nil, false, errors.New("cache down")
	}
	feed, ok := c.feeds[role]
	return feed, ok, nil
}

func (c *fakeFeedCache) SetFeed(_ context.Context, role string, notices []model.Notice) error {
	if c.broken {
		return errors.New("cache down")
	}
	c.feeds[role] = notices
	return nil
}

func (c *fakeFeedCache) DeleteFeed(_ context.Context, roles ...string) error {
	if c.broken {
		return errors.New("cache down")
	}
	for _, role := range roles {
		delete(c.feeds, role)
	}
	return nil
}

func (c *fakeFeedCache) MarkDirty(_ context.Context, roles ...string) error {
	if c.broken {
		return errors.New("cache down")
	}
	for _, role := range roles {
		c.dirty[role] = true
	}
	return nil
}

func (c *fakeFeedCache) IsDirty(_ context.Context, role string) (bool, error) {
	if c.broken {
		return false, errors.New("cache down")
	}
	return c.dirty[role], nil
}

func TestPublishNotice(t *testing.T) {
	req := require.New(t)
	store := newFakeNoticeStore()
	publisher := &recordingPublisher{}
	svc := NewNoticeService(store, nil, publisher)

	notice, err := svc.Publish(PublishNoticeInput{
		AuthorID:   7,
		AuthorRole: model.RoleFaculty,
		Title:      "Exam schedule",
		Content:    "Finals start May 4.",
	})
	req.NoError(err)
	req.Equal(uint(1), notice.ID)
	req.Equal(model.PriorityMedium, notice.Priority)
	req.Nil(notice.TargetRole)

	req.Len(publisher.events, 1)
	req.Equal(model.ActivityNoticePublished, publisher.events[0].Kind)
}

func TestPublishRejectsStudents(t *testing.T) {
	req := require.New(t)
	store := newFakeNoticeStore()
	svc := NewNoticeService(store, nil, nil)

	_, err := svc.Publish(PublishNoticeInput{
		AuthorID:   3,
		AuthorRole: model.RoleStudent,
		Title:      "t",
		Content:    "c",
	})
	req.ErrorIs(err, ErrNoticeForbidden)
	// Rejected before any write.
	req.Empty(store.notices)
}

func TestPublishValidation(t *testing.T) {
	req := require.New(t)
	svc := NewNoticeService(newFakeNoticeStore(), nil, nil)

	_, err := svc.Publish(PublishNoticeInput{AuthorID: 1, AuthorRole: model.RoleAdmin, Title: " ", Content: "c"})
	req.ErrorIs(err, ErrInvalidInput)

	_, err = svc.Publish(PublishNoticeInput{AuthorID: 1, AuthorRole: model.RoleAdmin, Title: "t", Content: "c", Priority: "URGENT"})
	req.ErrorIs(err, ErrInvalidPriority)

	bad := "JANITOR"
	_, err = svc.Publish(PublishNoticeInput{AuthorID: 1, AuthorRole: model.RoleAdmin, Title: "t", Content: "c", TargetRole: &bad})
	req.ErrorIs(err, ErrInvalidRole)

	// A blank target role collapses to broadcast.
	blank := "  "
	notice, err := svc.Publish(PublishNoticeInput{AuthorID: 1, AuthorRole: model.RoleAdmin, Title: "t", Content: "c", TargetRole: &blank})
	req.NoError(err)
	req.Nil(notice.TargetRole)
}

func TestFeedVisibility(t *testing.T) {
	req := require.New(t)
	store := newFakeNoticeStore()
	svc := NewNoticeService(store, nil, nil)

	student := model.RoleStudent
	faculty := model.RoleFaculty
	store.notices = []model.Notice{
		{ID: 1, Title: "broadcast", Priority: model.PriorityMedium},
		{ID: 2, Title: "students only", Priority: model.PriorityMedium, TargetRole: &student},
		{ID: 3, Title: "faculty only", Priority: model.PriorityMedium, TargetRole: &faculty},
	}

	feed, err := svc.Feed(model.RoleStudent)
	req.NoError(err)
	req.Len(feed, 2)
	for _, n := range feed {
		req.True(n.TargetRole == nil || *n.TargetRole == model.RoleStudent)
	}
}

func TestFeedOrdering(t *testing.T) {
	req := require.New(t)
	store := newFakeNoticeStore()
	svc := NewNoticeService(store, nil, nil)

	student := model.RoleStudent
	t1 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	store.notices = []model.Notice{
		{ID: 1, Title: "A", Priority: model.PriorityHigh, CreatedAt: t1},
		{ID: 2, Title: "B", Priority: model.PriorityMedium, CreatedAt: t2},
		{ID: 3, Title: "C", Priority: model.PriorityHigh, CreatedAt: t3, TargetRole: &student},
	}

	feed, err := svc.Feed(model.RoleStudent)
	req.NoError(err)
	req.Len(feed, 3)
	// Priority wins over recency; recency breaks priority ties.
	req.Equal("C", feed[0].Title)
	req.Equal("A", feed[1].Title)
	req.Equal("B", feed[2].Title)
}

func TestFeedSamePriorityNewestFirst(t *testing.T) {
	req := require.New(t)
	store := newFakeNoticeStore()
	svc := NewNoticeService(store, nil, nil)

	t1 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	store.notices = []model.Notice{
		{ID: 1, Title: "older", Priority: model.PriorityLow, CreatedAt: t1},
		{ID: 2, Title: "newer", Priority: model.PriorityLow, CreatedAt: t1.Add(time.Minute)},
	}

	feed, err := svc.Feed(model.RoleAdmin)
	req.NoError(err)
	req.Equal("newer", feed[0].Title)
	req.Equal("older", feed[1].Title)
}

func TestFeedUsesCacheUntilInvalidated(t *testing.T) {
	req := require.New(t)
	store := newFakeNoticeStore()
	feedCache := newFakeFeedCache()
	svc := NewNoticeService(store, feedCache, nil)

	store.notices = []model.Notice{{ID: 1, Title: "first", Priority: model.PriorityMedium}}

	feed, err := svc.Feed(model.RoleStudent)
	req.NoError(err)
	req.Len(feed, 1)
	req.Contains(feedCache.feeds, model.RoleStudent)

	// A broadcast publish invalidates every role's cached feed.
	_, err = svc.Publish(PublishNoticeInput{
		AuthorID:   9,
		AuthorRole: model.RoleAdmin,
		Title:      "second",
		Content:    "c",
	})
	req.NoError(err)
	req.NotContains(feedCache.feeds, model.RoleStudent)
	req.True(feedCache.dirty[model.RoleStudent])
	req.True(feedCache.dirty[model.RoleFaculty])
	req.True(feedCache.dirty[model.RoleAdmin])
}

func TestFeedTargetedPublishInvalidatesOneRole(t *testing.T) {
	req := require.New(t)
	store := newFakeNoticeStore()
	feedCache := newFakeFeedCache()
	svc := NewNoticeService(store, feedCache, nil)

	target := model.RoleFaculty
	_, err := svc.Publish(PublishNoticeInput{
		AuthorID:   9,
		AuthorRole: model.RoleAdmin,
		Title:      "faculty meeting",
		Content:    "c",
		TargetRole: &target,
	})
	req.NoError(err)
	req.True(feedCache.dirty[model.RoleFaculty])
	req.False(feedCache.dirty[model.RoleStudent])
	req.False(feedCache.dirty[model.RoleAdmin])
}

func TestFeedSurvivesBrokenCache(t *testing.T) {
	req := require.New(t)
	store := newFakeNoticeStore()
	feedCache := newFakeFeedCache()
	feedCache.broken = true
	svc := NewNoticeService(store, feedCache, nil)

	store.notices = []model.Notice{{ID: 1, Title: "only", Priority: model.PriorityMedium}}

	feed, err := svc.Feed(model.RoleStudent)
	req.NoError(err)
	req.Len(feed, 1)
}
