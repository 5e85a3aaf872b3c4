package http_room

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/quizroom/core/internal/delivery/http/common"
	usecase_room "github.com/humanbelnik/quizroom/core/internal/usecase/room"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

type Controller struct {
	usecase *usecase_room.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_room.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.GET("", c.list)
		rooms.GET("/:name/qr", c.qr)
	}
}

// list returns the same snapshot the lobby receives as roomList.
func (c *Controller) list(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.usecase.List())
}

// qr renders a PNG that opens the client on the room.
func (c *Controller) qr(ctx *gin.Context) {
	name := ctx.Param("name")

	if _, err := c.usecase.Get(name); err != nil {
		if errors.Is(err, usecase_room.ErrRoomNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to get room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	png, err := qrcode.Encode(joinURL(ctx.Request, name), qrcode.Medium, qrSize)
	if err != nil {
		c.logger.Error("qr generation failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

func joinURL(r *http.Request, room string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     "/",
		RawQuery: url.Values{"room": []string{room}}.Encode(),
	}
	return u.String()
}
