package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: "record.updated", Data: map[string]string{"name": "my-project"}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: record.updated") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"name":"my-project"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishRecordEvent_VaultThrottle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// First event should trigger vault.changed.
	b.PublishRecordEvent("updated", "a")
	// Second event immediately should NOT trigger another vault.changed.
	b.PublishRecordEvent("deleted", "b")

	// Drain and count events.
	time.Sleep(50 * time.Millisecond)
	vaultCount := 0
	recordCount := 0
loop:
	for {
		select {
		case msg := <-ch:
			s := string(msg)
			if strings.Contains(s, "vault.changed") {
				vaultCount++
			} else {
				recordCount++
			}
		default:
			break loop
		}
	}

	if recordCount != 2 {
		t.Errorf("record events = %d, want 2", recordCount)
	}
	if vaultCount != 1 {
		t.Errorf("vault events = %d, want 1 (throttled)", vaultCount)
	}
}

func TestPublishRecordEvent_KindsAndPayload(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishRecordEvent("updated", "Test Page")
	b.PublishRecordEvent("deleted", "Old Page")

	time.Sleep(50 * time.Millisecond)
	var msgs []string
drain:
	for {
		select {
		case msg := <-ch:
			msgs = append(msgs, string(msg))
		default:
			break drain
		}
	}

	joined := strings.Join(msgs, "")
	if !strings.Contains(joined, "event: record.updated") ||
		!strings.Contains(joined, `"name":"Test Page"`) {
		t.Errorf("missing record.updated payload in %q", joined)
	}
	if !strings.Contains(joined, "event: record.deleted") ||
		!strings.Contains(joined, `"name":"Old Page"`) {
		t.Errorf("missing record.deleted payload in %q", joined)
	}
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	// Start handler in background.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	// Give handler time to subscribe.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.Publish(Event{Type: "record.updated", Data: map[string]string{"name": "x"}})
	time.Sleep(50 * time.Millisecond)

	// Cancel context to disconnect.
	cancel()
	<-done

	body := w.Body.String()
	if !strings.Contains(body, "event: record.updated") {
		t.Errorf("handler output missing event: %q", body)
	}

	// Client should be cleaned up.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 0 {
		t.Errorf("client not cleaned up after disconnect")
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Fill buffer (capacity 64) and then one more should not block.
	for i := 0; i < 70; i++ {
		b.Publish(Event{Type: "test", Data: map[string]string{"i": "x"}})
	}
	// If we reach here without deadlock, the test passes.
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscriber channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close")
	}

	// Should be safe no-op after close.
	b.Publish(Event{Type: "record.updated", Data: map[string]string{"name": "x"}})
	b.PublishRecordEvent("updated", "x")
}
