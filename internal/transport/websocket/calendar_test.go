package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"clinicdesk/internal/domain"
)

type stubAuth map[string]domain.Actor

func (s stubAuth) ParseToken(_ context.Context, token string) (domain.Actor, error) {
	actor, ok := s[token]
	if !ok {
		return domain.Actor{}, errors.New("invalid token")
	}
	return actor, nil
}

func startHub(t *testing.T) (*CalendarHub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewCalendarHub(stubAuth{
		"front":  {ID: 1, Role: domain.UserRoleReceptionist},
		"doc7":   {ID: 7, Role: domain.UserRoleDoctor},
		"doc8":   {ID: 8, Role: domain.UserRoleDoctor},
		"ledger": {ID: 9, Role: domain.UserRoleAccountant},
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws/calendar", hub.HandleWebSocket)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/calendar"
}

func dial(t *testing.T, url, token string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url+"?token="+token, nil)
	if err != nil {
		t.Fatalf("dial with %q: %v", token, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitConnected(t *testing.T, hub *CalendarHub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectedCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connected clients, got %d", n, hub.ConnectedCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCalendarHub_RejectsMissingOrBadToken(t *testing.T) {
	_, url := startHub(t)

	for _, token := range []string{"", "nope"} {
		_, resp, err := websocket.DefaultDialer.Dial(url+"?token="+token, nil)
		if err == nil {
			t.Fatalf("expected dial with token %q to fail", token)
		}
		if resp == nil || resp.StatusCode != 401 {
			t.Fatalf("expected 401 for token %q, got %#v", token, resp)
		}
	}
}

func TestCalendarHub_RoutesEventsToRecipients(t *testing.T) {
	hub, url := startHub(t)

	front := dial(t, url, "front")
	doc7 := dial(t, url, "doc7")
	doc8 := dial(t, url, "doc8")
	waitConnected(t, hub, 3)

	event := domain.AppointmentEvent{
		Type:          domain.AppointmentEventCreated,
		AppointmentID: 42,
		DoctorID:      7,
		Status:        domain.AppointmentStatusScheduled,
		Recipients:    []string{"doctor:7", "role:admin"},
	}
	if err := hub.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	for name, conn := range map[string]*websocket.Conn{"front": front, "doc7": doc7} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("%s: read: %v", name, err)
		}
		var msg FeedMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if msg.Event.AppointmentID != 42 || msg.Label != "Agendada" {
			t.Fatalf("%s: unexpected message %+v", name, msg)
		}
		if expected := domain.AllowedOperations(domain.AppointmentStatusScheduled); !reflect.DeepEqual(msg.AllowedOperations, expected) {
			t.Fatalf("%s: expected allowed operations %v, got %v", name, expected, msg.AllowedOperations)
		}
	}

	doc8.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := doc8.ReadMessage(); err == nil {
		t.Fatal("doctor 8 should not receive doctor 7's event")
	}
}

func TestCalendarHub_UnregistersOnClose(t *testing.T) {
	hub, url := startHub(t)

	conn := dial(t, url, "front")
	waitConnected(t, hub, 1)

	conn.Close()
	waitConnected(t, hub, 0)
}

func TestCalendarHub_DispatchHonoursContext(t *testing.T) {
	hub := NewCalendarHub(stubAuth{}, zap.NewNop())
	for i := 0; i < sendBuffer; i++ {
		if err := hub.Dispatch(context.Background(), domain.AppointmentEvent{}); err != nil {
			t.Fatalf("dispatch %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := hub.Dispatch(ctx, domain.AppointmentEvent{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled with full queue, got %v", err)
	}
}

func TestCalendarHub_StoppedHubDoesNotBlock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewCalendarHub(stubAuth{"front": {ID: 1, Role: domain.UserRoleReceptionist}}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	r := gin.New()
	r.GET("/ws/calendar", hub.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/calendar"

	live := dial(t, url, "front")
	waitConnected(t, hub, 1)

	cancel()
	<-stopped

	live.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := live.ReadMessage(); err == nil {
		t.Fatal("expected connected screen to be closed on shutdown")
	}

	late := dial(t, url, "front")
	late.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := late.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Fatalf("expected going-away close after shutdown, got %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- hub.Dispatch(context.Background(), domain.AppointmentEvent{}) }()
	select {
	case err := <-done:
		if !errors.Is(err, errCalendarStopped) {
			t.Fatalf("expected errCalendarStopped, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch blocked on stopped hub")
	}
}

func TestShouldReceive(t *testing.T) {
	recipients := []string{"doctor:7", "role:admin"}
	cases := []struct {
		actor    domain.Actor
		expected bool
	}{
		{domain.Actor{ID: 1, Role: domain.UserRoleReceptionist}, true},
		{domain.Actor{ID: 2, Role: domain.UserRoleAdmin}, true},
		{domain.Actor{ID: 7, Role: domain.UserRoleDoctor}, true},
		{domain.Actor{ID: 8, Role: domain.UserRoleDoctor}, false},
		{domain.Actor{ID: 9, Role: domain.UserRoleAccountant}, false},
	}
	for _, tc := range cases {
		if got := ShouldReceive(tc.actor, recipients); got != tc.expected {
			t.Fatalf("ShouldReceive(%+v) expected %v, got %v", tc.actor, tc.expected, got)
		}
	}
}
