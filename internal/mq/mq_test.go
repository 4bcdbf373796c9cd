package mq

import (
	"context"
	"encoding/json"
	"testing"
)

type fakeBackend struct {
	channel string
	data    []byte
	attrs   map[string]string
	closed  bool
}

func (b *fakeBackend) Publish(_ context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	b.channel = channel
	b.data = data
	b.attrs = attrs
	return "id-1", nil
}

func (b *fakeBackend) Subscribe(_ context.Context, _ string, _ Handler) error {
	return nil
}

func (b *fakeBackend) Close() error {
	b.closed = true
	return nil
}

func TestBusPublishJSON(t *testing.T) {
	backend := &fakeBackend{}
	bus := New(backend)

	type payload struct {
		Title string `json:"title"`
	}

	id, err := bus.PublishJSON(context.Background(), AnnouncementsChannel, "created", payload{Title: "Notice"})
	if err != nil {
		t.Fatalf("PublishJSON error: %v", err)
	}
	if id != "id-1" {
		t.Fatalf("unexpected message id %q", id)
	}
	if backend.channel != AnnouncementsChannel {
		t.Fatalf("published to %q, want %q", backend.channel, AnnouncementsChannel)
	}
	if backend.attrs["event"] != "created" {
		t.Fatalf("missing event attribute, got %v", backend.attrs)
	}

	var got payload
	if err := json.Unmarshal(backend.data, &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if got.Title != "Notice" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestBusClose(t *testing.T) {
	backend := &fakeBackend{}
	bus := New(backend)
	if err := bus.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if !backend.closed {
		t.Fatalf("backend was not closed")
	}
}
