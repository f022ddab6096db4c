package stream

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gwillem/leaderarm/pkg/robot"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	srv := NewServer("", nil)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	t.Cleanup(func() { srv.hub.close() })
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, srv *Server, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for srv.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", srv.ClientCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestServer_BroadcastReachesSubscriber(t *testing.T) {
	srv, url := newTestServer(t)
	conn := dial(t, url)
	waitForClients(t, srv, 1)

	action := robot.Action{robot.ShoulderPan: 42.5, robot.Gripper: -3}
	srv.Broadcast(NewFrame(time.Now(), action))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}

	var frame Frame
	if err := json.Unmarshal(msg, &frame); err != nil {
		t.Fatalf("frame is not valid JSON: %v", err)
	}
	if frame.Timestamp == 0 {
		t.Error("frame has zero timestamp")
	}
	if frame.Actions["shoulder_pan"] != 42.5 {
		t.Errorf("actions[shoulder_pan] = %f, want 42.5", frame.Actions["shoulder_pan"])
	}
}

func TestServer_BroadcastReachesAllSubscribers(t *testing.T) {
	srv, url := newTestServer(t)
	a := dial(t, url)
	b := dial(t, url)
	waitForClients(t, srv, 2)

	srv.Broadcast(NewFrame(time.Now(), robot.Action{robot.WristFlex: 7}))

	for i, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("subscriber %d read: %v", i, err)
		}
		var frame Frame
		if err := json.Unmarshal(msg, &frame); err != nil {
			t.Fatalf("subscriber %d got invalid JSON: %v", i, err)
		}
		if frame.Actions["wrist_flex"] != 7 {
			t.Errorf("subscriber %d actions = %v", i, frame.Actions)
		}
	}
}

func TestServer_DisconnectDropsSubscriber(t *testing.T) {
	srv, url := newTestServer(t)
	conn := dial(t, url)
	waitForClients(t, srv, 1)

	conn.Close()
	waitForClients(t, srv, 0)
}

func TestServer_BroadcastWithoutSubscribers(t *testing.T) {
	srv, _ := newTestServer(t)

	// Must be a no-op, not a panic or a stuck queue.
	for i := 0; i < 100; i++ {
		srv.Broadcast(NewFrame(time.Now(), robot.Action{robot.ElbowFlex: 1}))
	}
	if srv.ClientCount() != 0 {
		t.Errorf("client count = %d, want 0", srv.ClientCount())
	}
}
