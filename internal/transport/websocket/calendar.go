package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"clinicdesk/internal/domain"
	"clinicdesk/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 64
)

// FeedMessage is what calendar screens receive for each appointment event.
type FeedMessage struct {
	Type              domain.AppointmentEventType `json:"type"`
	Event             domain.AppointmentEvent     `json:"event"`
	Label             string                      `json:"label"`
	Color             string                      `json:"color"`
	AllowedOperations []domain.Operation          `json:"allowed_operations"`
}

var errCalendarStopped = errors.New("календарь остановлен")

type Client struct {
	Actor domain.Actor
	Conn  *websocket.Conn
	Send  chan []byte
	Hub   *CalendarHub
}

// CalendarHub pushes appointment events to connected front-desk screens.
// It implements notify.Dispatcher.
type CalendarHub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	deliver    chan FeedMessage
	// done is closed once Run returns.
	done chan struct{}

	auth   service.AuthService
	logger *zap.Logger

	mutex sync.RWMutex
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewCalendarHub(auth service.AuthService, logger *zap.Logger) *CalendarHub {
	return &CalendarHub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan FeedMessage, sendBuffer),
		done:       make(chan struct{}),
		auth:       auth,
		logger:     logger,
	}
}

func (h *CalendarHub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			h.logger.Info("экран календаря подключен",
				zap.Int64("user_id", client.Actor.ID),
				zap.String("role", string(client.Actor.Role)))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			h.logger.Info("экран календаря отключен", zap.Int64("user_id", client.Actor.ID))

		case msg := <-h.deliver:
			h.broadcast(msg)
		}
	}
}

func (h *CalendarHub) broadcast(msg FeedMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("ошибка сериализации сообщения календаря", zap.Error(err))
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if !ShouldReceive(client.Actor, msg.Event.Recipients) {
			continue
		}
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("клиент не успевает читать, соединение закрыто", zap.Int64("user_id", client.Actor.ID))
			delete(h.clients, client)
			close(client.Send)
		}
	}
}

// Dispatch queues the event for connected screens.
func (h *CalendarHub) Dispatch(ctx context.Context, event domain.AppointmentEvent) error {
	p := domain.PresentStatus(event.Status)
	ops := domain.AllowedOperations(event.Status)
	if ops == nil {
		ops = []domain.Operation{}
	}
	msg := FeedMessage{Type: event.Type, Event: event, Label: p.Label, Color: p.Color, AllowedOperations: ops}

	select {
	case <-h.done:
		return errCalendarStopped
	default:
	}

	select {
	case h.deliver <- msg:
		return nil
	case <-h.done:
		return errCalendarStopped
	case <-ctx.Done():
		return fmt.Errorf("календарь не принял событие: %w", ctx.Err())
	}
}

// ShouldReceive reports whether a connected user sees an event. Receptionists
// keep the shared calendar in sync and get every event; everyone else only
// gets events addressed to them.
func ShouldReceive(actor domain.Actor, recipients []string) bool {
	if actor.Role == domain.UserRoleReceptionist {
		return true
	}
	for _, r := range recipients {
		if r == "role:"+string(actor.Role) {
			return true
		}
		if r == "doctor:"+strconv.FormatInt(actor.ID, 10) {
			return true
		}
	}
	return false
}

func (h *CalendarHub) ConnectedCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleWebSocket authenticates with the token query parameter, since
// browsers cannot set headers on websocket requests.
func (h *CalendarHub) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "требуется токен"})
		return
	}

	actor, err := h.auth.ParseToken(c.Request.Context(), token)
	if err != nil {
		h.logger.Warn("отклонено подключение к календарю", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "недействительный токен"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("ошибка установки websocket соединения", zap.Error(err))
		return
	}

	client := &Client{
		Actor: actor,
		Conn:  conn,
		Send:  make(chan []byte, sendBuffer),
		Hub:   h,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump only services control frames; screens do not send data.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("ошибка websocket", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Hub.logger.Warn("ошибка отправки в websocket",
					zap.Int64("user_id", c.Actor.ID),
					zap.Error(err))
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
