package app

import "smart-campus/internal/model"

type ActivityStore interface {
	ListRecent(limit int) ([]model.ActivityEvent, error)
}

// ActivityService serves the admin-facing audit trail written by the
// activity worker.
type ActivityService struct {
	store ActivityStore
}

func NewActivityService(store ActivityStore) *ActivityService {
	return &ActivityService{store: store}
}

func (s *ActivityService) ListRecent(limit int) ([]model.ActivityEvent, error) {
	return s.store.ListRecent(limit)
}
