package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Attach(conn, r.URL.Query().Get("role"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, role string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?role=" + role
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func join(t *testing.T, conn *websocket.Conn, room string) {
	t.Helper()
	if err := conn.WriteJSON(Event{Name: EventJoinRoom, Data: room}); err != nil {
		t.Fatalf("join: %v", err)
	}
}

func waitForMembers(t *testing.T, hub *Hub, room string, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Count(room) != n {
		if time.Now().After(deadline) {
			t.Fatalf("room %s has %d members, want %d", room, hub.Count(room), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return out
}

func TestHub_RoomDelivery(t *testing.T) {
	hub := NewHub(nil)
	srv := newTestServer(t, hub)

	vet := dial(t, srv, "veterinarian")
	farmer := dial(t, srv, "farmer")
	join(t, vet, RoomVets)
	join(t, farmer, RoomFarmers)
	waitForMembers(t, hub, RoomVets, 1)
	waitForMembers(t, hub, RoomFarmers, 1)

	hub.Deliver([]string{RoomVets}, Event{Name: EventNewEmergency, Data: map[string]string{"emergencyId": "e1"}})

	got := readEvent(t, vet)
	if got["event"] != EventNewEmergency {
		t.Fatalf("vet got %v", got)
	}

	if err := hub.Publish(context.Background(), []string{RoomFarmers, RoomVets}, StatusUpdated("e1", "Acknowledged")); err != nil {
		t.Fatal(err)
	}
	for _, conn := range []*websocket.Conn{farmer, vet} {
		got := readEvent(t, conn)
		data, _ := got["data"].(map[string]any)
		if got["event"] != EventStatusUpdated || data["status"] != "Acknowledged" || data["emergencyId"] != "e1" {
			t.Errorf("status event = %v", got)
		}
	}
}

func TestHub_UnknownRoomAndLeave(t *testing.T) {
	hub := NewHub(nil)
	srv := newTestServer(t, hub)

	conn := dial(t, srv, "veterinarian")
	join(t, conn, "everyone")
	join(t, conn, RoomVets)
	waitForMembers(t, hub, RoomVets, 1)
	if hub.Count("everyone") != 0 {
		t.Error("unknown room joined")
	}

	if err := conn.WriteJSON(Event{Name: EventLeaveRoom, Data: RoomVets}); err != nil {
		t.Fatal(err)
	}
	waitForMembers(t, hub, RoomVets, 0)
}

func TestHub_DisconnectCleansUp(t *testing.T) {
	hub := NewHub(nil)
	srv := newTestServer(t, hub)

	conn := dial(t, srv, "")
	join(t, conn, RoomFarmers)
	waitForMembers(t, hub, RoomFarmers, 1)

	conn.Close()
	waitForMembers(t, hub, RoomFarmers, 0)

	hub.Deliver([]string{RoomFarmers}, StatusUpdated("e1", "Resolved"))
}

func TestHub_PrivilegedRoomsNeedRole(t *testing.T) {
	hub := NewHub(nil)
	srv := newTestServer(t, hub)

	anon := dial(t, srv, "")
	join(t, anon, RoomVets)
	join(t, anon, RoomAdmins)
	join(t, anon, RoomFarmers)
	// frames are handled in order, so the farmers join lands last
	waitForMembers(t, hub, RoomFarmers, 1)
	if hub.Count(RoomVets) != 0 || hub.Count(RoomAdmins) != 0 {
		t.Fatalf("anonymous client joined vets=%d admins=%d", hub.Count(RoomVets), hub.Count(RoomAdmins))
	}

	vet := dial(t, srv, "veterinarian")
	join(t, vet, RoomAdmins)
	join(t, vet, RoomVets)
	waitForMembers(t, hub, RoomVets, 1)
	if hub.Count(RoomAdmins) != 0 {
		t.Error("vet joined the admins room")
	}

	admin := dial(t, srv, "admin")
	join(t, admin, RoomVets)
	join(t, admin, RoomAdmins)
	waitForMembers(t, hub, RoomAdmins, 1)
	waitForMembers(t, hub, RoomVets, 2)
}

func TestCanJoin(t *testing.T) {
	tests := []struct {
		role, room string
		want       bool
	}{
		{"", RoomFarmers, true},
		{"", RoomVets, false},
		{"", RoomAdmins, false},
		{"farmer", RoomVets, false},
		{"veterinarian", RoomVets, true},
		{"veterinarian", RoomAdmins, false},
		{"admin", RoomVets, true},
		{"admin", RoomAdmins, true},
		{"admin", "everyone", false},
	}
	for _, tt := range tests {
		if got := CanJoin(tt.role, tt.room); got != tt.want {
			t.Errorf("CanJoin(%q, %q) = %v, want %v", tt.role, tt.room, got, tt.want)
		}
	}
}

func TestRoomForRole(t *testing.T) {
	for role, want := range map[string]string{
		"farmer": RoomFarmers, "veterinarian": RoomVets, "admin": RoomAdmins, "": "",
	} {
		if got := RoomForRole(role); got != want {
			t.Errorf("RoomForRole(%q) = %q", role, got)
		}
	}
}
