package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/humanbelnik/quizroom/core/internal/config"
	http_catalog "github.com/humanbelnik/quizroom/core/internal/delivery/http/catalog"
	http_init "github.com/humanbelnik/quizroom/core/internal/delivery/http/init"
	http_access_middleware "github.com/humanbelnik/quizroom/core/internal/delivery/http/middleware/access"
	http_auth_middleware "github.com/humanbelnik/quizroom/core/internal/delivery/http/middleware/auth"
	http_room "github.com/humanbelnik/quizroom/core/internal/delivery/http/room"
	ws_quiz "github.com/humanbelnik/quizroom/core/internal/delivery/ws/quiz"
	infra_auth "github.com/humanbelnik/quizroom/core/internal/infra/auth"
	infra_pg_init "github.com/humanbelnik/quizroom/core/internal/infra/postgres/init"
	infra_postgres_question "github.com/humanbelnik/quizroom/core/internal/infra/postgres/question"
	infra_question_cache "github.com/humanbelnik/quizroom/core/internal/infra/redis/questioncache"
	infra_redis_init "github.com/humanbelnik/quizroom/core/internal/infra/redis/init"
	storage_session "github.com/humanbelnik/quizroom/core/internal/storage/session"
	usecase_presence "github.com/humanbelnik/quizroom/core/internal/usecase/presence"
	usecase_quiz "github.com/humanbelnik/quizroom/core/internal/usecase/quiz"
	usecase_room "github.com/humanbelnik/quizroom/core/internal/usecase/room"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
)

func Go(cfg *config.Config, verbose bool) error {
	setupLogger(cfg.Log.Level, verbose)

	if cfg.Auth.JWTSecret == "" {
		slog.Warn("JWT_SECRET is empty, every token will be rejected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	defer pgConn.Close()
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	defer redisConn.Close()

	questionBank := infra_question_cache.New(
		infra_postgres_question.New(pgConn),
		redisConn,
		cfg.Redis.Key,
		cfg.Redis.TTL,
	)
	verifier := infra_auth.New(cfg.Auth.JWTSecret)

	registry := storage_session.New()
	hub := ws_quiz.NewHub()

	roomUC := usecase_room.New(registry, hub)
	presenceUC := usecase_presence.New(registry, roomUC, hub, verifier)
	quizUC := usecase_quiz.New(registry, roomUC, hub, questionBank)

	controllerPool := http_init.NewControllerPool(http_access_middleware.AllowOrigins(cfg.WS.AllowedOrigins))
	controllerPool.Add(http_room.New(roomUC))
	controllerPool.Add(http_catalog.New(quizUC, http_auth_middleware.New(verifier)))
	controllerPool.Add(ws_quiz.NewController(hub, presenceUC, quizUC, roomUC,
		ws_quiz.WithAllowedOrigins(cfg.WS.AllowedOrigins),
		ws_quiz.WithSendBuffer(cfg.WS.SendBuffer),
		ws_quiz.WithBaseContext(ctx),
	))
	controllerPool.Register()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return controllerPool.Serve(gctx, cfg.HTTP.Host, cfg.HTTP.Port, cfg.HTTP.ShutdownTimeout)
	})

	err := g.Wait()
	if err != nil {
		slog.Error("server stopped", "error", err)
		return err
	}
	slog.Info("server stopped")
	return nil
}

func setupLogger(level string, verbose bool) {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:     lvl,
		AddSource: true,
	})))
}
