package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func TestHub_Subscribe(t *testing.T) {
	hub := NewHub(zerolog.Nop(), []string{"*"})

	var got []Event
	unsubscribe := hub.Subscribe(func(e Event) { got = append(got, e) })

	hub.Publish("batch", ActionUpdate, map[string]string{"id": "1"})
	if len(got) != 1 || got[0].Resource != "batch" || got[0].Action != ActionUpdate {
		t.Fatalf("unexpected events: %+v", got)
	}

	unsubscribe()
	hub.Publish("batch", ActionDelete, nil)
	if len(got) != 1 {
		t.Fatalf("expected no delivery after unsubscribe, got %d events", len(got))
	}
}

func TestHub_ServeWS(t *testing.T) {
	hub := NewHub(zerolog.Nop(), []string{"*"})
	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Publish("promotion", ActionCreate, map[string]string{"name": "Black Friday"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var event struct {
		Resource string            `json:"resource"`
		Action   Action            `json:"action"`
		Data     map[string]string `json:"data"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.Resource != "promotion" || event.Action != ActionCreate || event.Data["name"] != "Black Friday" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://app.test"})
	req := httptest.NewRequest("GET", "/ws", nil)
	if !check(req) {
		t.Fatalf("requests without origin must pass")
	}
	req.Header.Set("Origin", "http://evil.test")
	if check(req) {
		t.Fatalf("unknown origin must be rejected")
	}
	req.Header.Set("Origin", "http://app.test")
	if !check(req) {
		t.Fatalf("allowed origin must pass")
	}
}
