package http_catalog

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/quizroom/core/internal/delivery/http/common"
	http_auth_middleware "github.com/humanbelnik/quizroom/core/internal/delivery/http/middleware/auth"
	usecase_quiz "github.com/humanbelnik/quizroom/core/internal/usecase/quiz"
)

type Controller struct {
	usecase        *usecase_quiz.Usecase
	authMiddleware *http_auth_middleware.Middleware
	logger         *slog.Logger
}

func New(
	usecase *usecase_quiz.Usecase,
	authMiddleware *http_auth_middleware.Middleware,
) *Controller {
	return &Controller{
		usecase:        usecase,
		authMiddleware: authMiddleware,
		logger:         slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories", c.authMiddleware.AuthRequired())
	{
		categories.GET("", c.categories)
		categories.GET("/:category/count", c.count)
	}
}

type CategoriesResponseDTO struct {
	Categories []string `json:"categories"`
}

type CountResponseDTO struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

func (c *Controller) categories(ctx *gin.Context) {
	categories, err := c.usecase.Categories(ctx)
	if err != nil {
		c.logger.Error("failed to list categories", slog.String("error", err.Error()))
		ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
			Message: "unavailable",
		})
		return
	}

	ctx.JSON(http.StatusOK, CategoriesResponseDTO{
		Categories: categories,
	})
}

func (c *Controller) count(ctx *gin.Context) {
	category := ctx.Param("category")

	count, err := c.usecase.CountQuestions(ctx, category)
	if err != nil {
		c.logger.Error("failed to count questions", slog.String("error", err.Error()), slog.String("category", category))
		ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
			Message: "unavailable",
		})
		return
	}

	ctx.JSON(http.StatusOK, CountResponseDTO{
		Category: category,
		Count:    count,
	})
}
