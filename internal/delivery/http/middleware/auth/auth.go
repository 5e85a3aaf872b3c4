package http_auth_middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/quizroom/core/internal/delivery/http/common"
)

type TokenValidator interface {
	ValidateToken(token string) (bool, error)
}

type Middleware struct {
	validator TokenValidator
	logger    *slog.Logger
}

func New(
	validator TokenValidator,
) *Middleware {
	return &Middleware{
		validator: validator,
		logger:    slog.Default(),
	}
}

func (m *Middleware) AuthRequired() gin.HandlerFunc {
	const header = "Authorization"
	return func(ctx *gin.Context) {
		t, found := strings.CutPrefix(ctx.GetHeader(header), "Bearer ")
		if !found || t == "" {
			m.logger.Warn(fmt.Sprintf("no bearer token in %s header", header))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: fmt.Sprintf("no bearer token in %s header", header),
			})
			ctx.Abort()
			return
		}

		valid, err := m.validator.ValidateToken(t)
		if err != nil {
			m.logger.Error("internal error", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			ctx.Abort()
			return
		}
		if !valid {
			m.logger.Warn("invalid token")
			ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
				Message: "invalid token",
			})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
