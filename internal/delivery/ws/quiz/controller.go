package ws_quiz

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/humanbelnik/quizroom/core/internal/model"
	usecase_presence "github.com/humanbelnik/quizroom/core/internal/usecase/presence"
	usecase_quiz "github.com/humanbelnik/quizroom/core/internal/usecase/quiz"
	usecase_room "github.com/humanbelnik/quizroom/core/internal/usecase/room"
)

const welcomeText = "Welcome to Quiz App!"

type Controller struct {
	hub      *Hub
	presence *usecase_presence.Usecase
	quiz     *usecase_quiz.Usecase
	rooms    *usecase_room.Usecase

	upgrader   websocket.Upgrader
	sendBuffer int
	// Handlers outlive the connection that triggered them.
	baseCtx context.Context

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithAllowedOrigins(origins []string) ControllerOption {
	return func(c *Controller) {
		c.upgrader.CheckOrigin = checkOrigin(origins)
	}
}

func WithSendBuffer(size int) ControllerOption {
	return func(c *Controller) {
		if size > 0 {
			c.sendBuffer = size
		}
	}
}

func WithBaseContext(ctx context.Context) ControllerOption {
	return func(c *Controller) {
		c.baseCtx = context.WithoutCancel(ctx)
	}
}

func NewController(
	hub *Hub,
	presence *usecase_presence.Usecase,
	quiz *usecase_quiz.Usecase,
	rooms *usecase_room.Usecase,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		hub:      hub,
		presence: presence,
		quiz:     quiz,
		rooms:    rooms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sendBuffer: 64,
		baseCtx:    context.Background(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws", c.serve)
}

func (c *Controller) serve(ctx *gin.Context) {
	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Warn("upgrade failed", "error", err)
		return
	}

	client := newClient(c.hub, conn, uuid.NewString(), c.sendBuffer)
	c.hub.RegisterClient(client)
	go client.writePump()

	c.greet(client.connID)

	client.readPump(func(in inboundEvent) {
		c.dispatch(client.connID, in)
	})

	c.presence.LeaveApp(client.connID)
	c.hub.RemoveClient(client)
	client.close()
}

func (c *Controller) greet(connID string) {
	c.rooms.Tell(connID, welcomeText)
	c.hub.Emit(connID, model.EventRoomList, c.rooms.List())

	categories, err := c.quiz.Categories(c.baseCtx)
	if err != nil {
		c.logger.Error("failed to load categories", "error", err)
		categories = []string{}
	}
	c.hub.Emit(connID, model.EventListOfCategories, categories)
}

// An empty list or "*" allows every origin.
func checkOrigin(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = struct{}{}
	}
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := allowed[origin]; ok {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}
