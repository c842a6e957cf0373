package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"nekomate-backend/internal/handlers"
	"nekomate-backend/internal/middleware"
	"nekomate-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	timerHandler *handlers.TimerHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	todoHandler *handlers.TodoHandler,
	calendarHandler *handlers.CalendarHandler,
	chatHandler *handlers.ChatHandler,
	userHandler *handlers.UserHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Timer Routes ────
		r.Route("/timer", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", timerHandler.State)
			r.Post("/start", timerHandler.Start)
			r.Post("/pause", timerHandler.Pause)
			r.Post("/reset", timerHandler.Reset)
			r.Put("/duration", timerHandler.ApplyDuration)
			r.Get("/presets", timerHandler.Presets)

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", timerHandler.ListNotes)
				r.Post("/", timerHandler.CreateNote)
				r.Delete("/{id}", timerHandler.DeleteNote)
			})

			r.Route("/links", func(r chi.Router) {
				r.Get("/", timerHandler.ListLinks)
				r.Post("/", timerHandler.CreateLink)
				r.Delete("/{id}", timerHandler.DeleteLink)
			})
		})

		// ──── Analytics Routes ────
		r.Route("/analytics", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/sessions", analyticsHandler.Sessions)
			r.Get("/daily", analyticsHandler.Daily)
			r.Get("/tasks", analyticsHandler.TaskStats)
			r.Get("/overview", analyticsHandler.Overview)
		})

		// ──── Task Routes ────
		r.Route("/tasks", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", todoHandler.List)
			r.Post("/", todoHandler.Create)
			r.Put("/{id}", todoHandler.Update)
			r.Put("/{id}/complete", todoHandler.ToggleComplete)
			r.Delete("/{id}", todoHandler.Delete)
		})

		// ──── Calendar Routes ────
		r.Route("/calendar", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/events", calendarHandler.List)
			r.Post("/events", calendarHandler.Create)
			r.Put("/events/{id}", calendarHandler.Update)
			r.Delete("/events/{id}", calendarHandler.Delete)
		})

		// ──── Chat Routes ────
		r.Route("/chat", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/message", chatHandler.Message)
		})

		// ──── User & Settings Routes ────
		r.Route("/user", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/me", userHandler.GetMe)
			r.Put("/me", userHandler.UpdateMe)
			r.Put("/password", userHandler.ChangePassword)
			r.Delete("/me", userHandler.DeleteMe)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
