package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/condoease/apiserver/internal/mq"
	"github.com/condoease/apiserver/internal/store"
	"github.com/condoease/apiserver/types"
)

type fakeAnnouncementRepo struct {
	items  map[int]types.Announcement
	nextID int
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{items: map[int]types.Announcement{}, nextID: 1}
}

func (r *fakeAnnouncementRepo) Get(_ context.Context, id int) (types.Announcement, error) {
	a, ok := r.items[id]
	if !ok {
		return types.Announcement{}, store.ErrNotFound
	}
	return a, nil
}

func (r *fakeAnnouncementRepo) ListByUser(_ context.Context, userID int) ([]types.Announcement, error) {
	out := make([]types.Announcement, 0)
	for _, a := range r.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAnnouncementRepo) Create(_ context.Context, a types.Announcement) (types.Announcement, error) {
	a.ID = r.nextID
	r.nextID++
	r.items[a.ID] = a
	return a, nil
}

func (r *fakeAnnouncementRepo) Update(_ context.Context, a types.Announcement) (types.Announcement, error) {
	if _, ok := r.items[a.ID]; !ok {
		return types.Announcement{}, store.ErrNotFound
	}
	r.items[a.ID] = a
	return a, nil
}

func (r *fakeAnnouncementRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type publishedEvent struct {
	channel string
	event   string
	payload []byte
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (p *fakePublisher) PublishJSON(_ context.Context, channel, event string, payload any) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	p.events = append(p.events, publishedEvent{channel: channel, event: event, payload: data})
	return "msg-1", nil
}

func TestAnnouncementLifecycleEvents(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	publisher := &fakePublisher{}
	svc := NewAnnouncementService(repo, nil, publisher, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, types.Announcement{Title: "Pool closed", Description: "For cleaning", UserID: 1}, nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	created.Description = "Reopens Monday"
	if _, err := svc.Update(ctx, created, nil); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	if len(publisher.events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(publisher.events))
	}
	wantEvents := []string{EventAnnouncementCreated, EventAnnouncementUpdated, EventAnnouncementDeleted}
	for i, want := range wantEvents {
		got := publisher.events[i]
		if got.channel != mq.AnnouncementsChannel {
			t.Fatalf("event %d on channel %q, want %q", i, got.channel, mq.AnnouncementsChannel)
		}
		if got.event != want {
			t.Fatalf("event %d is %q, want %q", i, got.event, want)
		}
		var payload types.AnnouncementEvent
		if err := json.Unmarshal(got.payload, &payload); err != nil {
			t.Fatalf("event %d payload: %v", i, err)
		}
		if payload.Event != want {
			t.Fatalf("event %d payload event %q, want %q", i, payload.Event, want)
		}
	}
}

func TestAnnouncementCreate_SurvivesPublishFailure(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	publisher := &fakePublisher{err: errors.New("broker down")}
	svc := NewAnnouncementService(repo, nil, publisher, nil)

	created, err := svc.Create(context.Background(), types.Announcement{Title: "Notice", UserID: 1}, nil)
	if err != nil {
		t.Fatalf("Create must succeed when the broadcast fails, got %v", err)
	}
	if _, ok := repo.items[created.ID]; !ok {
		t.Fatalf("announcement was not persisted")
	}
}

func TestAnnouncementUpdate_PreservesAuthor(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := NewAnnouncementService(repo, nil, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, types.Announcement{Title: "Notice", UserID: 7}, nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	updated, err := svc.Update(ctx, types.Announcement{ID: created.ID, Title: "Edited"}, nil)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.UserID != 7 {
		t.Fatalf("author changed on update: got %d want 7", updated.UserID)
	}
}

func TestAnnouncementUpdate_NotFound(t *testing.T) {
	svc := NewAnnouncementService(newFakeAnnouncementRepo(), nil, nil, nil)
	_, err := svc.Update(context.Background(), types.Announcement{ID: 99, Title: "X"}, nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
