package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	api "github.com/mind-engage/mindengage-quiz/internal/api/http"
	auth "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/config"
	"github.com/mind-engage/mindengage-quiz/internal/db"
	"github.com/mind-engage/mindengage-quiz/internal/exam"
	"github.com/mind-engage/mindengage-quiz/internal/users"
)

func main() {
	cfg := config.FromEnv()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	store, userStore, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("store open failed", slog.String("driver", cfg.StoreDriver), slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStores()

	if cfg.SeedSample {
		// a failed seed leaves the service usable, so it is not fatal
		if err := exam.SeedSample(ctx, store); err != nil {
			slog.Error("seed sample test", slog.Any("error", err))
		} else {
			slog.Info("sample test stored", slog.String("test_id", exam.SampleTestID))
		}
	}

	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.TokenTTL)
	handler := api.NewRouter(api.Deps{
		Exams: exam.NewService(store, store),
		Users: users.NewService(userStore, cfg.BcryptCost),
		Auth:  authSvc,
		RoleFor: func(email string) string {
			if cfg.IsAdmin(email) {
				return "admin"
			}
			return "student"
		},
		CORSOrigins:    cfg.CORSOrigins(),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("listening", slog.String("addr", cfg.HTTPAddr), slog.String("mode", string(cfg.Mode)), slog.String("store", cfg.StoreDriver))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func openStores(ctx context.Context, cfg config.Config) (exam.Store, users.Store, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case "mongo":
		mdb, err := db.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() { _ = mdb.Client().Disconnect(context.Background()) }
		return exam.NewMongoStore(mdb), users.NewMongoStore(mdb), closeFn, nil
	case "memory":
		// users still need SQL; keep them in an in-process sqlite database
		dbh, err := db.Open(ctx, db.DriverSQLite, ":memory:")
		if err != nil {
			return nil, nil, nil, err
		}
		return exam.NewInMemoryStore(), users.NewSQLStore(dbh), func() { _ = dbh.Close() }, nil
	default:
		dbh, err := db.Open(ctx, db.Driver(cfg.StoreDriver), cfg.DBDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		return exam.NewSQLStore(dbh), users.NewSQLStore(dbh), func() { _ = dbh.Close() }, nil
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
