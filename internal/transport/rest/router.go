package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/englearn/backend/internal/config"
	"github.com/englearn/backend/internal/storage"
	"github.com/englearn/backend/internal/transport/middleware"
)

// tokenValidator validates bearer tokens for the auth middleware.
type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// Deps bundles everything the router needs.
type Deps struct {
	Logger         *slog.Logger
	CORS           config.CORSConfig
	UploadsDir     string
	TokenValidator tokenValidator

	Health     *HealthHandler
	Auth       *AuthHandler
	Admin      *AdminHandler
	Vocabulary *VocabularyHandler
	Topics     *TopicHandler
	Progress   *ProgressHandler
	Speech     *SpeechHandler
	Chat       *ChatHandler
}

// NewRouter assembles the full HTTP routing table. Every /api route except
// registration, login, and the password-reset flow requires a valid token;
// catalog mutations additionally require the admin role.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.CORS(d.CORS))

	r.Get("/health", d.Health.Health)
	r.Get("/health/live", d.Health.Live)
	r.Get("/health/ready", d.Health.Ready)

	// Uploaded images and recordings are served straight from disk.
	files := http.StripPrefix(storage.URLPrefix+"/", http.FileServer(http.Dir(d.UploadsDir)))
	r.Handle(storage.URLPrefix+"/*", files)

	authn := middleware.Auth(d.TokenValidator)
	adminOnly := middleware.RequireAdmin()

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.Auth.Register)
			r.Post("/login", d.Auth.Login)
			r.Post("/forgot-password", d.Auth.ForgotPassword)
			r.Post("/reset-password", d.Auth.ResetPassword)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", d.Admin.Login)

			r.Group(func(r chi.Router) {
				r.Use(authn, adminOnly)
				r.Get("/users", d.Admin.Users)
				r.Post("/create", d.Admin.CreateUser)
				r.Delete("/users/{id}", d.Admin.DeleteUser)
				r.Get("/dashboard", d.Admin.Dashboard)
			})
		})

		r.Route("/vocabulary", func(r chi.Router) {
			r.Use(authn)
			r.Get("/", d.Vocabulary.List)
			r.Get("/stats", d.Vocabulary.Stats)
			r.Get("/{id}", d.Vocabulary.Get)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", d.Vocabulary.Create)
				r.Put("/{id}", d.Vocabulary.Update)
				r.Delete("/{id}", d.Vocabulary.Delete)
				r.Delete("/", d.Vocabulary.DeleteAll)
				r.Post("/upload", d.Vocabulary.Upload)
				r.Post("/upload-from-url", d.Vocabulary.UploadFromURL)
			})
		})

		r.Route("/topics", func(r chi.Router) {
			r.Use(authn)
			r.Get("/", d.Topics.List)
			r.Get("/{topic}/words", d.Topics.Words)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", d.Topics.Create)
				r.Delete("/{id}", d.Topics.Delete)
			})
		})

		r.Route("/user-vocabulary", func(r chi.Router) {
			r.Use(authn)
			r.Get("/favorites", d.Progress.Favorites)
			r.Get("/favorites/{wordID}", d.Progress.IsFavorite)
			r.Post("/favorites/{wordID}", d.Progress.AddFavorite)
			r.Delete("/favorites/{wordID}", d.Progress.RemoveFavorite)
			r.Get("/learned", d.Progress.Learned)
			r.Get("/learned/{wordID}", d.Progress.LearnedState)
			r.Post("/learned/{wordID}", d.Progress.MarkLearned)
			r.Get("/quiz-attempts", d.Progress.QuizAttempts)
			r.Post("/quiz-attempts", d.Progress.RecordQuiz)
			r.Get("/stats", d.Progress.Stats)
		})

		r.Route("/speech-practice", func(r chi.Router) {
			r.Use(authn)
			r.Get("/sentences", d.Speech.ListSentences)
			r.Get("/sentences/{id}", d.Speech.GetSentence)
			r.Get("/categories", d.Speech.Categories)
			r.Post("/practice", d.Speech.RecordPractice)
			r.Get("/history", d.Speech.History)
			r.Delete("/history", d.Speech.DeleteHistory)
			r.Delete("/history/{id}", d.Speech.DeleteAttempt)
			r.Get("/stats", d.Speech.Stats)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/sentences", d.Speech.CreateSentence)
				r.Put("/sentences/{id}", d.Speech.UpdateSentence)
				r.Delete("/sentences/{id}", d.Speech.DeleteSentence)
				r.Post("/upload", d.Speech.Upload)
				r.Get("/admin/stats", d.Speech.AdminStats)
			})
		})

		r.Route("/chat", func(r chi.Router) {
			r.Use(authn)
			r.Post("/send", d.Chat.Send)
			r.Get("/models", d.Chat.Models)
			r.Get("/history", d.Chat.History)
			r.Get("/history/{id}", d.Chat.Get)
			r.Delete("/history", d.Chat.DeleteAll)
			r.Delete("/history/{id}", d.Chat.Delete)
		})
	})

	return r
}
