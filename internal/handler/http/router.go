package http

import (
	"log/slog"
	"os"

	"github.com/banrai-ops/farm-backend-go/internal/config"
	"github.com/banrai-ops/farm-backend-go/internal/handler/http/middleware"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	taskHandler TaskHandler,
	payrollHandler PayrollHandler,
	expenseHandler ExpenseHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "farm-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}/pay-config", employeeHandler.GetPayConfig)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireBossOrAdmin)
					r.Put("/{id}/pay-config", employeeHandler.UpdatePayConfig)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Get("/{id}", taskHandler.Get)
				r.Get("/{id}/payments", taskHandler.ListPayments)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireBossOrAdmin)
					r.Post("/", taskHandler.Create)
					r.Put("/{id}", taskHandler.Update)
					r.Delete("/{id}", taskHandler.Delete)
					r.Post("/{id}/payments", taskHandler.CreatePayment)
					r.Delete("/{id}/payments/{paymentID}", taskHandler.DeletePayment)
				})
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Use(middleware.RequireBossOrAdmin)
				r.Get("/preview", payrollHandler.Preview)
				r.Get("/", payrollHandler.List)
				r.Post("/", payrollHandler.Create)
				r.Get("/{id}", payrollHandler.Get)
				r.Put("/{id}/status", payrollHandler.UpdateStatus)
				r.Delete("/{id}", payrollHandler.Delete)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", expenseHandler.List)
				r.Get("/{id}", expenseHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireBossOrAdmin)
					r.Post("/", expenseHandler.Create)
					r.Put("/{id}", expenseHandler.Update)
					r.Delete("/{id}", expenseHandler.Delete)
				})
			})
		})
	})

	return r
}
