package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/pierreiost/quadracerta/internal/config"
	"github.com/pierreiost/quadracerta/internal/domain/user"
	"github.com/pierreiost/quadracerta/internal/handler/http/middleware"
	"github.com/pierreiost/quadracerta/internal/pkg/jwt"
)

// Handlers groups every HTTP handler mounted by NewRouter
type Handlers struct {
	Auth         AuthHandler
	Complex      ComplexHandler
	Court        CourtHandler
	Client       ClientHandler
	Product      ProductHandler
	Reservation  ReservationHandler
	Tab          TabHandler
	User         UserHandler
	Notification NotificationHandler
}

func NewRouter(cfg *config.Config, logger *slog.Logger, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if cfg.RateLimit.Enabled {
					r.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
				}
				r.Post("/register", h.Auth.Register)
				r.Post("/login", h.Auth.Login)
				r.Post("/refresh", h.Auth.RefreshToken)
				r.Post("/logout", h.Auth.Logout)
			})

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Get("/me", h.Auth.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			// Unscoped super admins are let through and get an empty feed
			r.Route("/notifications", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionNotificationView))
				r.Get("/", h.Notification.Feed)
				r.Get("/summary", h.Notification.Summary)
			})

			r.Route("/complexes", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSuperAdmin)
					r.Get("/", h.Complex.List)
					r.Post("/", h.Complex.Create)
				})

				r.Route("/my", func(r chi.Router) {
					r.Use(middleware.RequireComplex)
					r.Get("/", h.Complex.GetMine)
					r.With(middleware.RequireAdmin).Put("/", h.Complex.UpdateMine)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequireComplex, middleware.RequireAdmin).Get("/staff", h.User.ListStaff)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionStaffApprove))
					r.Get("/pending", h.User.ListPending)
					r.Patch("/{id}/approve", h.User.Approve)
					r.Patch("/{id}/reject", h.User.Reject)
				})
			})

			// Complex scoped resources
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireComplex)

				r.Route("/courts", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionCourtView)).Get("/", h.Court.List)
					r.With(middleware.RequirePermission(user.PermissionCourtView)).Get("/{id}", h.Court.Get)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionCourtManage))
						r.Post("/", h.Court.Create)
						r.Put("/{id}", h.Court.Update)
						r.Patch("/{id}/status", h.Court.UpdateStatus)
						r.Delete("/{id}", h.Court.Delete)
					})
				})

				r.Route("/clients", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionClientView)).Get("/", h.Client.List)
					r.With(middleware.RequirePermission(user.PermissionClientView)).Get("/{id}", h.Client.Get)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionClientManage))
						r.Post("/", h.Client.Create)
						r.Put("/{id}", h.Client.Update)
						r.Delete("/{id}", h.Client.Delete)
					})
				})

				r.Route("/products", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionProductView)).Get("/", h.Product.List)
					r.With(middleware.RequirePermission(user.PermissionProductView)).Get("/{id}", h.Product.Get)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionProductManage))
						r.Post("/", h.Product.Create)
						r.Put("/{id}", h.Product.Update)
						r.Patch("/{id}/stock", h.Product.AdjustStock)
						r.Delete("/{id}", h.Product.Delete)
					})
				})

				r.Route("/reservations", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionReservationView)).Get("/", h.Reservation.List)
					r.With(middleware.RequirePermission(user.PermissionReservationView)).Get("/{id}", h.Reservation.Get)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionReservationManage))
						r.Post("/", h.Reservation.Create)
						r.Post("/recurring", h.Reservation.CreateRecurring)
						r.Patch("/{id}/confirm", h.Reservation.Confirm)
						r.Patch("/{id}/cancel", h.Reservation.Cancel)
						r.Patch("/{id}/complete", h.Reservation.Complete)
					})
				})

				r.Route("/tabs", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionTabView)).Get("/", h.Tab.List)
					r.With(middleware.RequirePermission(user.PermissionTabView)).Get("/{id}", h.Tab.Get)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionTabManage))
						r.Post("/", h.Tab.Open)
						r.Post("/{id}/items", h.Tab.AddItem)
						r.Delete("/{id}/items/{itemId}", h.Tab.RemoveItem)
						r.Patch("/{id}/close", h.Tab.Close)
						r.Patch("/{id}/cancel", h.Tab.Cancel)
					})
				})
			})
		})
	})

	return r
}

// NewLogger builds the JSON logger shared by the request logger and the services.
func NewLogger(cfg *config.Config, version string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "quadracerta"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
}
