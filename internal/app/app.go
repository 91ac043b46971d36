package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	jwtauth "github.com/englearn/backend/internal/auth"

	"github.com/englearn/backend/internal/adapter/openrouter"
	"github.com/englearn/backend/internal/adapter/postgres"
	chatrepo "github.com/englearn/backend/internal/adapter/postgres/chat"
	practicerepo "github.com/englearn/backend/internal/adapter/postgres/practice"
	progressrepo "github.com/englearn/backend/internal/adapter/postgres/progress"
	sentencerepo "github.com/englearn/backend/internal/adapter/postgres/sentence"
	topicrepo "github.com/englearn/backend/internal/adapter/postgres/topic"
	userrepo "github.com/englearn/backend/internal/adapter/postgres/user"
	wordrepo "github.com/englearn/backend/internal/adapter/postgres/word"
	"github.com/englearn/backend/internal/config"
	adminsvc "github.com/englearn/backend/internal/service/admin"
	authsvc "github.com/englearn/backend/internal/service/auth"
	chatsvc "github.com/englearn/backend/internal/service/chat"
	progresssvc "github.com/englearn/backend/internal/service/progress"
	speechsvc "github.com/englearn/backend/internal/service/speech"
	topicsvc "github.com/englearn/backend/internal/service/topic"
	vocabsvc "github.com/englearn/backend/internal/service/vocabulary"
	"github.com/englearn/backend/internal/storage"
	"github.com/englearn/backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, applies
// migrations, wires repositories, services, and handlers, and runs the
// HTTP server until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	files, err := storage.NewLocal(cfg.Uploads.Dir)
	if err != nil {
		return fmt.Errorf("init upload storage: %w", err)
	}

	txm := postgres.NewTxManager(pool)
	users := userrepo.New(pool)
	words := wordrepo.New(pool)
	topics := topicrepo.New(pool)
	sentences := sentencerepo.New(pool)
	practices := practicerepo.New(pool)
	progresses := progressrepo.New(pool)
	chats := chatrepo.New(pool)

	jwt := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL, cfg.Auth.AdminTokenTTL)
	llm := openrouter.NewClient(cfg.Chat, logger)

	authService := authsvc.NewService(logger, users, jwt, cfg.Auth)
	vocabService := vocabsvc.NewService(logger, words, txm)
	topicService := topicsvc.NewService(logger, topics, words, files)
	speechService := speechsvc.NewService(logger, sentences, practices, txm)
	progressService := progresssvc.NewService(logger, progresses)
	chatService := chatsvc.NewService(logger, chats, llm, cfg.Chat)
	adminService := adminsvc.NewService(logger, users, words)

	router := rest.NewRouter(rest.Deps{
		Logger:         logger,
		CORS:           cfg.CORS,
		UploadsDir:     cfg.Uploads.Dir,
		TokenValidator: jwt,

		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		Auth:       rest.NewAuthHandler(authService, logger),
		Admin:      rest.NewAdminHandler(authService, adminService, logger),
		Vocabulary: rest.NewVocabularyHandler(vocabService, cfg.Uploads, logger),
		Topics:     rest.NewTopicHandler(topicService, files, cfg.Uploads, logger),
		Progress:   rest.NewProgressHandler(progressService, logger),
		Speech:     rest.NewSpeechHandler(speechService, files, cfg.Uploads, logger),
		Chat:       rest.NewChatHandler(chatService, logger),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	// fail with a startup error even if it raced with ctx cancellation
	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	default:
	}

	logger.Info("application stopped")

	return nil
}
