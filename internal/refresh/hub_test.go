package refresh_test

import (
	"context"
	"errors"
	"testing"

	"performate/internal/logging"
	"performate/internal/refresh"
)

func TestNotify_CallsEverySubscriber(t *testing.T) {
	hub := refresh.NewHub(logging.Discard())

	var tasks, cal int
	hub.Subscribe("tasks", func(context.Context) error { tasks++; return nil })
	hub.Subscribe("calendar", func(context.Context) error { cal++; return nil })

	hub.Notify(context.Background())
	hub.Notify(context.Background())

	if tasks != 2 || cal != 2 {
		t.Errorf("tasks = %d, calendar = %d, want 2 each", tasks, cal)
	}
	if hub.Notifications() != 2 {
		t.Errorf("notifications = %d, want 2", hub.Notifications())
	}
}

func TestNotify_EmptyHubIsNoOp(t *testing.T) {
	hub := refresh.NewHub(logging.Discard())
	hub.Notify(context.Background())
	if hub.Notifications() != 1 {
		t.Errorf("notifications = %d, want 1", hub.Notifications())
	}
}

func TestCancel_StopsDelivery(t *testing.T) {
	hub := refresh.NewHub(logging.Discard())

	var calls int
	cancel := hub.Subscribe("tasks", func(context.Context) error { calls++; return nil })

	hub.Notify(context.Background())
	cancel()
	hub.Notify(context.Background())

	if calls != 1 {
		t.Errorf("calls = %d, want 1 after cancel", calls)
	}
}

func TestNotify_SubscriberFailureDoesNotBlockOthers(t *testing.T) {
	hub := refresh.NewHub(logging.Discard())

	var ok int
	hub.Subscribe("broken", func(context.Context) error { return errors.New("refetch failed") })
	hub.Subscribe("healthy", func(context.Context) error { ok++; return nil })

	hub.Notify(context.Background())

	if ok != 1 {
		t.Errorf("healthy subscriber calls = %d, want 1", ok)
	}
}

func TestSubscribe_LateSubscriberMissesEarlierNotify(t *testing.T) {
	hub := refresh.NewHub(logging.Discard())
	hub.Notify(context.Background())

	var calls int
	hub.Subscribe("late", func(context.Context) error { calls++; return nil })
	if calls != 0 {
		t.Error("notifications must not be queued for late subscribers")
	}
}
