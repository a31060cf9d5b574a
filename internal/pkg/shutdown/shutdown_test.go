package shutdown

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"scenecast/internal/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json", Output: &bytes.Buffer{}})
}

func TestShutdownRunsHandlersInReverseOrder(t *testing.T) {
	m := NewManager(testLogger(), time.Second)

	var order []string
	m.Register("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	m.Register("second", func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})

	m.Shutdown()

	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("expected LIFO order, got %v", order)
	}
}

func TestShutdownContinuesPastFailures(t *testing.T) {
	m := NewManager(testLogger(), time.Second)

	ran := false
	m.Register("ok", func(ctx context.Context) error {
		ran = true
		return nil
	})
	m.Register("failing", func(ctx context.Context) error {
		return fmt.Errorf("cleanup failed")
	})

	m.Shutdown()

	if !ran {
		t.Error("expected later handlers to run after a failure")
	}
}

func TestDoneClosesAfterShutdown(t *testing.T) {
	m := NewManager(testLogger(), time.Second)

	select {
	case <-m.Done():
		t.Fatal("done must not be closed before shutdown")
	default:
	}

	m.Shutdown()

	select {
	case <-m.Done():
	case <-time.After(time.Second):
		t.Fatal("expected done to close after shutdown")
	}
}
