package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator"

	"quizdeck/internal/attempts"
	"quizdeck/internal/scoring"
	"quizdeck/internal/store"
	"quizdeck/internal/utility"
	httputil "quizdeck/internal/utility/http"
)

// Handlers bundles the injected collaborators every route needs. No package
// globals: the store handles arrive through the constructor.
type Handlers struct {
	users    store.UserStore
	quizzes  store.QuizStore
	attempts store.AttemptStore
	tracker  *attempts.Tracker
	tokens   *utility.TokenMaker
	validate *validator.Validate
}

func NewHandlers(users store.UserStore, quizzes store.QuizStore, attemptStore store.AttemptStore, tracker *attempts.Tracker, tokens *utility.TokenMaker) *Handlers {
	return &Handlers{
		users:    users,
		quizzes:  quizzes,
		attempts: attemptStore,
		tracker:  tracker,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// NewRouter wires the full HTTP surface.
func NewRouter(h *Handlers, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(h.Authentication).Get("/me", h.Me)
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(h.Authentication)
		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.UpdateProfile)
	})

	r.Route("/quiz", func(r chi.Router) {
		r.Use(h.Authentication)
		r.Get("/", h.GetQuizzes)
		r.Get("/my-quizzes", h.GetMyQuizzes)
		r.With(h.AdminOnly).Post("/", h.CreateQuiz)
		r.Get("/{id}", h.GetQuizByID)
		r.Post("/{id}/start", h.StartQuiz)
		r.Post("/{id}/submit", h.SubmitQuiz)
		r.Get("/{id}/response", h.GetQuizResponse)
		r.With(h.AdminOnly).Get("/{id}/participants", h.GetParticipants)
		r.With(h.AdminOnly).Get("/{id}/response/{userId}", h.GetParticipantResponse)
	})

	return r
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
	})
}

// respondError translates store and scoring errors into the HTTP taxonomy.
func respondError(w http.ResponseWriter, err error) {
	var verr *scoring.ValidationError
	switch {
	case errors.As(err, &verr):
		httputil.RespondError(w, http.StatusBadRequest, verr.Reason)
	case errors.Is(err, store.ErrQuizNotFound):
		httputil.RespondError(w, http.StatusNotFound, "Quiz not found")
	case errors.Is(err, store.ErrAttemptNotFound):
		httputil.RespondError(w, http.StatusNotFound, "Attempt not found")
	case errors.Is(err, store.ErrUserNotFound):
		httputil.RespondError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, store.ErrNoActiveAttempt):
		httputil.RespondError(w, http.StatusBadRequest, "No active quiz attempt found")
	case errors.Is(err, store.ErrDuplicateEmail):
		httputil.RespondError(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, store.ErrDuplicateUsername):
		httputil.RespondError(w, http.StatusBadRequest, "Username already taken")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "Something went wrong!")
	}
}
