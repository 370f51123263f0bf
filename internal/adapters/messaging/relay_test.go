package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/messmate/mess-client/internal/core/ports"
	"github.com/messmate/mess-client/test/mocks"
)

func TestRelay_DeliversQueuedEvents(t *testing.T) {
	sink := mocks.NewMockEventPublisher()
	relay := NewRelay(sink, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relay.Start(ctx)

	evt := ports.SessionEvent{Kind: ports.SessionEventLogin, Username: "alice", At: time.Now()}
	if err := relay.PublishSessionEvent(context.Background(), evt); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for len(sink.Events()) == 0 {
		select {
		case <-deadline:
			t.Fatal("event never reached the sink")
		case <-time.After(10 * time.Millisecond):
		}
	}

	got := sink.Events()[0]
	if got.Kind != ports.SessionEventLogin || got.Username != "alice" {
		t.Errorf("unexpected event delivered: %+v", got)
	}
}

func TestRelay_FullSpoolDropsInsteadOfBlocking(t *testing.T) {
	sink := mocks.NewMockEventPublisher()
	relay := NewRelay(sink, 1)
	// Not started: the spool cannot drain.

	if err := relay.PublishSessionEvent(context.Background(), ports.SessionEvent{Kind: ports.SessionEventLogin}); err != nil {
		t.Fatalf("first enqueue failed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- relay.PublishSessionEvent(context.Background(), ports.SessionEvent{Kind: ports.SessionEventLogout})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("overflow enqueue must not fail: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full spool")
	}
}

func TestRelay_Readiness(t *testing.T) {
	sink := mocks.NewMockEventPublisher()
	relay := NewRelay(sink, 4)

	if relay.IsReady() {
		t.Error("relay must not report ready before Start")
	}

	ctx, cancel := context.WithCancel(context.Background())
	go relay.Start(ctx)

	deadline := time.After(2 * time.Second)
	for !relay.IsReady() {
		select {
		case <-deadline:
			t.Fatal("relay never became ready")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	for relay.IsHealthy() {
		select {
		case <-deadline:
			t.Fatal("relay never stopped after cancel")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
