package event

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestBus_PublishToTopicAndAll(t *testing.T) {
	b := NewBus(zap.NewNop())

	var topicHits, allHits int
	b.Subscribe("theme.applied", func(_ context.Context, e Event) {
		topicHits++
		if e.Timestamp.IsZero() {
			t.Error("expected Publish to stamp a timestamp")
		}
	})
	b.SubscribeAll(func(context.Context, Event) { allHits++ })

	b.Publish(context.Background(), Event{Topic: "theme.applied"})
	b.Publish(context.Background(), Event{Topic: "theme.saved"})

	if topicHits != 1 {
		t.Errorf("topic handler hits = %d, want 1", topicHits)
	}
	if allHits != 2 {
		t.Errorf("catch-all hits = %d, want 2", allHits)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	b := NewBus(zap.NewNop())

	hits := 0
	unsub := b.Subscribe("t", func(context.Context, Event) { hits++ })
	b.Publish(context.Background(), Event{Topic: "t"})
	unsub()
	b.Publish(context.Background(), Event{Topic: "t"})

	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
}

func TestBus_PanickingHandlerDoesNotBlockOthers(t *testing.T) {
	b := NewBus(zap.NewNop())

	reached := false
	b.Subscribe("t", func(context.Context, Event) { panic("boom") })
	b.Subscribe("t", func(context.Context, Event) { reached = true })

	b.Publish(context.Background(), Event{Topic: "t"})

	if !reached {
		t.Error("second handler not called after first panicked")
	}
}
