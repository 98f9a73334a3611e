package app

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"smart-campus/internal/model"
)

var (
	ErrNoticeForbidden = errors.New("only faculty or admin can publish notices")
	ErrInvalidPriority = errors.New("invalid notice priority")
	ErrInvalidRole     = errors.New("invalid target role")
)

type NoticeStore interface {
	Create(notice *model.Notice) error
	GetByID(id uint) (*model.Notice, error)
	ListVisibleToRole(role string) ([]model.Notice, error)
}

// FeedCache keeps the per-role sorted feed. Every method is advisory: cache
// errors degrade to store reads, never to request failures.
type FeedCache interface {
	GetFeed(ctx context.Context, role string) ([]model.Notice, bool, error)
	SetFeed(ctx context.Context, role string, notices []model.Notice) error
	DeleteFeed(ctx context.Context, roles ...string) error
	MarkDirty(ctx context.Context, roles ...string) error
	IsDirty(ctx context.Context, role string) (bool, error)
}

type NoticeService struct {
	notices  NoticeStore
	cache    FeedCache
	activity ActivityPublisher
}

type PublishNoticeInput struct {
	AuthorID   uint
	AuthorRole string
	Title      string
	Content    string
	Priority   string
	TargetRole *string
}

func NewNoticeService(notices NoticeStore, cache FeedCache, activity ActivityPublisher) *NoticeService {
	return &NoticeService{
		notices:  notices,
		cache:    cache,
		activity: activity,
	}
}

// Publish stores a notice. Students cannot publish; the route guard enforces
// the same rule earlier, but the contract is kept here so no other entry
// point can bypass it.
func (s *NoticeService) Publish(input PublishNoticeInput) (*model.Notice, error) {
	if input.AuthorID == 0 {
		return nil, ErrInvalidInput
	}
	if input.AuthorRole != model.RoleFaculty && input.AuthorRole != model.RoleAdmin {
		return nil, ErrNoticeForbidden
	}

	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, ErrInvalidInput
	}

	priority := strings.TrimSpace(input.Priority)
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	targetRole := input.TargetRole
	if targetRole != nil {
		trimmed := strings.TrimSpace(*targetRole)
		if trimmed == "" {
			targetRole = nil
		} else if !model.ValidRole(trimmed) {
			return nil, ErrInvalidRole
		} else {
			targetRole = &trimmed
		}
	}

	notice := &model.Notice{
		Title:      title,
		Content:    content,
		Priority:   priority,
		TargetRole: targetRole,
		AuthorID:   input.AuthorID,
		CreatedAt:  time.Now(),
	}
	if err := s.notices.Create(notice); err != nil {
		return nil, err
	}

	s.invalidateFeed(targetRole)

	stored, err := s.notices.GetByID(notice.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = notice
	}

	s.publishActivity(model.ActivityEvent{
		Kind:      model.ActivityNoticePublished,
		ActorID:   input.AuthorID,
		SubjectID: notice.ID,
		Detail:    priority,
		CreatedAt: time.Now(),
	})

	return stored, nil
}

// Feed returns every notice visible to the role, highest priority first and
// newest first within equal priority. The whole feed is returned; no
// pagination.
func (s *NoticeService) Feed(role string) ([]model.Notice, error) {
	ctx := context.Background()
	if s.cache != nil {
		dirty, err := s.cache.IsDirty(ctx, role)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.cache.GetFeed(ctx, role); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	notices, err := s.notices.ListVisibleToRole(role)
	if err != nil {
		return nil, err
	}
	sortFeed(notices)

	if s.cache != nil {
		if dirty, dirtyErr := s.cache.IsDirty(ctx, role); dirtyErr == nil && !dirty {
			_ = s.cache.SetFeed(ctx, role, notices)
		}
	}
	return notices, nil
}

// sortFeed applies the two-key feed order: priority descending, then
// creation time descending, with the record id as a final tiebreak so equal
// timestamps stay deterministic.
func sortFeed(notices []model.Notice) {
	sort.Slice(notices, func(i, j int) bool {
		ri, rj := model.PriorityRank(notices[i].Priority), model.PriorityRank(notices[j].Priority)
		if ri != rj {
			return ri > rj
		}
		if !notices[i].CreatedAt.Equal(notices[j].CreatedAt) {
			return notices[i].CreatedAt.After(notices[j].CreatedAt)
		}
		return notices[i].ID > notices[j].ID
	})
}

func (s *NoticeService) invalidateFeed(targetRole *string) {
	if s.cache == nil {
		return
	}

	roles := model.AllRoles
	if targetRole != nil {
		roles = []string{*targetRole}
	}

	ctx := context.Background()
	if err := s.cache.MarkDirty(ctx, roles...); err != nil {
		log.Printf("mark feed dirty failed: %v", err)
	}
	if err := s.cache.DeleteFeed(ctx, roles...); err != nil {
		log.Printf("delete cached feed failed: %v", err)
	}
}

func (s *NoticeService) publishActivity(event model.ActivityEvent) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Publish(context.Background(), event); err != nil {
		log.Printf("publish activity event failed: %v", err)
	}
}
