package services

import (
	"context"

	"github.com/condoease/apiserver/internal/mq"
	"github.com/condoease/apiserver/internal/storage"
	"github.com/condoease/apiserver/types"
	"go.uber.org/zap"
)

// Announcement event names carried in the "event" message attribute.
const (
	EventAnnouncementCreated = "created"
	EventAnnouncementUpdated = "updated"
	EventAnnouncementDeleted = "deleted"
)

// AnnouncementRepository defines persistence operations for announcements.
type AnnouncementRepository interface {
	Get(ctx context.Context, id int) (types.Announcement, error)
	ListByUser(ctx context.Context, userID int) ([]types.Announcement, error)
	Create(ctx context.Context, a types.Announcement) (types.Announcement, error)
	Update(ctx context.Context, a types.Announcement) (types.Announcement, error)
	Delete(ctx context.Context, id int) error
}

// EventPublisher publishes announcement domain events to the event bus.
type EventPublisher interface {
	PublishJSON(ctx context.Context, channel, event string, payload any) (string, error)
}

// AnnouncementService encapsulates announcement use-cases: persistence,
// attachment storage and event publication. The write succeeds even if
// the broadcast fails; broadcast errors are logged, not returned.
type AnnouncementService struct {
	repo      AnnouncementRepository
	files     FileStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewAnnouncementService(repo AnnouncementRepository, files FileStore, publisher EventPublisher, logger *zap.Logger) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{
		repo:      repo,
		files:     files,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *AnnouncementService) Get(ctx context.Context, id int) (types.Announcement, error) {
	return s.repo.Get(ctx, id)
}

func (s *AnnouncementService) ListByUser(ctx context.Context, userID int) ([]types.Announcement, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create stores the attachment (when present), persists the post and
// publishes a "created" event.
func (s *AnnouncementService) Create(ctx context.Context, a types.Announcement, attachment *Upload) (types.Announcement, error) {
	if attachment != nil && s.files != nil {
		key, err := putUpload(ctx, s.files, storage.PrefixAnnouncements, *attachment)
		if err != nil {
			return types.Announcement{}, err
		}
		a.FileURL = key
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return types.Announcement{}, err
	}

	s.publish(ctx, EventAnnouncementCreated, created)
	return created, nil
}

// Update replaces the attachment when a new one is supplied, deleting
// the previous object, and publishes an "updated" event.
func (s *AnnouncementService) Update(ctx context.Context, a types.Announcement, attachment *Upload) (types.Announcement, error) {
	current, err := s.repo.Get(ctx, a.ID)
	if err != nil {
		return types.Announcement{}, err
	}

	a.UserID = current.UserID
	a.FileURL = current.FileURL
	if attachment != nil && s.files != nil {
		key, err := putUpload(ctx, s.files, storage.PrefixAnnouncements, *attachment)
		if err != nil {
			return types.Announcement{}, err
		}
		a.FileURL = key
	}

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return types.Announcement{}, err
	}

	if attachment != nil && s.files != nil && current.FileURL != "" && current.FileURL != updated.FileURL {
		if err := s.files.Delete(ctx, current.FileURL); err != nil {
			s.logger.Warn("failed to delete replaced attachment",
				zap.String("key", current.FileURL), zap.Error(err))
		}
	}

	s.publish(ctx, EventAnnouncementUpdated, updated)
	return updated, nil
}

// Delete removes the post and its attachment and publishes a "deleted"
// event carrying only the ID.
func (s *AnnouncementService) Delete(ctx context.Context, id int) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.files != nil && current.FileURL != "" {
		if err := s.files.Delete(ctx, current.FileURL); err != nil {
			s.logger.Warn("failed to delete attachment",
				zap.String("key", current.FileURL), zap.Error(err))
		}
	}

	s.publish(ctx, EventAnnouncementDeleted, types.Announcement{ID: id})
	return nil
}

func (s *AnnouncementService) publish(ctx context.Context, event string, a types.Announcement) {
	if s.publisher == nil {
		return
	}
	payload := types.AnnouncementEvent{Event: event, Announcement: a}
	if _, err := s.publisher.PublishJSON(ctx, mq.AnnouncementsChannel, event, payload); err != nil {
		s.logger.Warn("failed to publish announcement event",
			zap.String("event", event), zap.Int("id", a.ID), zap.Error(err))
	}
}
