package services

import (
	"testing"
	"time"

	"github.com/messmate/mess-client/internal/core/domain"
)

func TestNotifier_AutoExpiry(t *testing.T) {
	notifier := NewNotifier(30 * time.Millisecond)

	notifier.Publish(domain.NoticeInfo, "Heads Up", "something happened")
	if got := len(notifier.Active()); got != 1 {
		t.Fatalf("expected 1 active notification, got %d", got)
	}

	deadline := time.After(2 * time.Second)
	for len(notifier.Active()) != 0 {
		select {
		case <-deadline:
			t.Fatal("notification did not auto-expire")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestNotifier_DismissCancelsExpiry(t *testing.T) {
	notifier := NewNotifier(30 * time.Millisecond)

	id := notifier.Publish(domain.NoticeError, "Oops", "details")
	notifier.Dismiss(id)

	if got := len(notifier.Active()); got != 0 {
		t.Fatalf("expected 0 active after dismiss, got %d", got)
	}

	// The scheduled expiry must not fire against the removed entry.
	time.Sleep(60 * time.Millisecond)
	notifier.Dismiss(id) // no-op on an unknown id
	if got := len(notifier.Active()); got != 0 {
		t.Fatalf("expected 0 active, got %d", got)
	}
}

func TestNotifier_NoDeduplication(t *testing.T) {
	notifier := NewNotifier(time.Minute)

	first := notifier.Publish(domain.NoticeSuccess, "Saved", "done")
	second := notifier.Publish(domain.NoticeSuccess, "Saved", "done")

	if first == second {
		t.Error("identical messages must produce distinct notifications")
	}
	if got := len(notifier.Active()); got != 2 {
		t.Errorf("expected 2 active notifications, got %d", got)
	}
}

func TestNotifier_Subscribe(t *testing.T) {
	notifier := NewNotifier(time.Minute)
	ch := notifier.Subscribe(4)

	notifier.Publish(domain.NoticeWarning, "Careful", "watch out")

	select {
	case got := <-ch:
		if got.Kind != domain.NoticeWarning || got.Title != "Careful" {
			t.Errorf("unexpected notification delivered: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the notification")
	}
}

func TestNotifier_ActiveOrderedByCreation(t *testing.T) {
	notifier := NewNotifier(time.Minute)

	notifier.Publish(domain.NoticeInfo, "first", "")
	time.Sleep(2 * time.Millisecond)
	notifier.Publish(domain.NoticeInfo, "second", "")

	active := notifier.Active()
	if len(active) != 2 {
		t.Fatalf("expected 2 active, got %d", len(active))
	}
	if active[0].Title != "first" || active[1].Title != "second" {
		t.Errorf("notifications out of order: %q, %q", active[0].Title, active[1].Title)
	}
}
