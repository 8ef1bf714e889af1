package emit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	return msg
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub(HubOptions{})
	defer h.Close()
	conn := dialHub(t, h)

	if err := h.Emit(DeviceChanged, map[string]string{"kind": "MousePress", "value": "Left"}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	msg := readMessage(t, conn)
	if msg.Channel != DeviceChanged {
		t.Fatalf("expected %s, got %s", DeviceChanged, msg.Channel)
	}
	payload, ok := msg.Payload.(map[string]any)
	if !ok || payload["value"] != "Left" {
		t.Fatalf("unexpected payload %#v", msg.Payload)
	}
}

func TestHubEmitWithoutClients(t *testing.T) {
	h := NewHub(HubOptions{})
	defer h.Close()
	if err := h.Emit(GamepadChanged, 0.5); err != nil {
		t.Fatalf("emit without clients: %v", err)
	}
}

func TestHubInvoke(t *testing.T) {
	errBusy := errors.New("device is already listening")
	calls := make(chan string, 2)
	h := NewHub(HubOptions{
		Context: context.Background(),
		Invoke: func(_ context.Context, command string) error {
			calls <- command
			if command == "start_device_listening" {
				return errBusy
			}
			return nil
		},
	})
	defer h.Close()
	conn := dialHub(t, h)

	if err := conn.WriteJSON(Request{Invoke: "start_device_listening"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg := readMessage(t, conn)
	if msg.Channel != InvokeResult {
		t.Fatalf("expected %s, got %s", InvokeResult, msg.Channel)
	}
	reply := msg.Payload.(map[string]any)
	if reply["invoke"] != "start_device_listening" || reply["ok"] != false || reply["error"] != errBusy.Error() {
		t.Fatalf("unexpected reply %#v", reply)
	}

	if err := conn.WriteJSON(Request{Invoke: "stop_gamepad_listing"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	reply = readMessage(t, conn).Payload.(map[string]any)
	if reply["ok"] != true {
		t.Fatalf("expected ok reply, got %#v", reply)
	}

	if got := <-calls; got != "start_device_listening" {
		t.Fatalf("unexpected first call %q", got)
	}
}

func TestHubInvokeDisabled(t *testing.T) {
	h := NewHub(HubOptions{})
	defer h.Close()
	conn := dialHub(t, h)

	if err := conn.WriteJSON(Request{Invoke: "start_gamepad_listing"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	reply := readMessage(t, conn).Payload.(map[string]any)
	if reply["ok"] != false || reply["error"] == "" {
		t.Fatalf("expected rejection, got %#v", reply)
	}
}

func TestHubCloseDisconnects(t *testing.T) {
	h := NewHub(HubOptions{})
	conn := dialHub(t, h)

	h.Close()
	if h.Clients() != 0 {
		t.Fatalf("expected no clients after close")
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected connection to be closed")
	}
}
