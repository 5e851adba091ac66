package events

import (
	"context"
	"log/slog"
	"os"
	"testing"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(ContentCreated, ContentChange{Table: "grados", ID: 1, Nombre: "Primero"})

	if event.ID == "" {
		t.Error("Event ID should not be empty")
	}
	if event.Type != ContentCreated {
		t.Errorf("Expected type %q, got %q", ContentCreated, event.Type)
	}
	if event.Source != "content-service" {
		t.Errorf("Expected source 'content-service', got %q", event.Source)
	}
	if event.Version != "1.0" {
		t.Errorf("Expected version '1.0', got %q", event.Version)
	}
	if event.Timestamp.IsZero() {
		t.Error("Event timestamp should be set")
	}
}

func TestNoopEventPublisher(t *testing.T) {
	var publisher EventPublisher = NewNoopEventPublisher()

	if err := publisher.Publish(context.Background(), NewEvent(ContentCreated, nil)); err != nil {
		t.Errorf("Publish should be a no-op, got %v", err)
	}
	if err := publisher.Close(); err != nil {
		t.Errorf("Close should be a no-op, got %v", err)
	}
}

func TestMockEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	ctx := context.Background()

	if err := publisher.Publish(ctx, NewEvent(ContentCreated, nil)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := publisher.Publish(ctx, NewEvent(ContentDeleted, nil)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(published))
	}
	if published[0].Type != ContentCreated || published[1].Type != ContentDeleted {
		t.Errorf("Unexpected event order: %v, %v", published[0].Type, published[1].Type)
	}

	publisher.ClearEvents()
	if len(publisher.GetPublishedEvents()) != 0 {
		t.Error("Expected no events after ClearEvents")
	}
}
