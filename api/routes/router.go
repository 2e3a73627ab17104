package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Rehan-4778/JobHunt-BE/api/controllers"
	applicationcontrollers "github.com/Rehan-4778/JobHunt-BE/api/controllers/applications"
	authcontrollers "github.com/Rehan-4778/JobHunt-BE/api/controllers/auth"
	categorycontrollers "github.com/Rehan-4778/JobHunt-BE/api/controllers/categories"
	jobcontrollers "github.com/Rehan-4778/JobHunt-BE/api/controllers/jobs"
	notificationcontrollers "github.com/Rehan-4778/JobHunt-BE/api/controllers/notifications"
	usercontrollers "github.com/Rehan-4778/JobHunt-BE/api/controllers/users"
	"github.com/Rehan-4778/JobHunt-BE/api/middleware"
	"github.com/Rehan-4778/JobHunt-BE/api/uploads"
	"github.com/Rehan-4778/JobHunt-BE/internal/applications"
	"github.com/Rehan-4778/JobHunt-BE/internal/auth"
	"github.com/Rehan-4778/JobHunt-BE/internal/categories"
	"github.com/Rehan-4778/JobHunt-BE/internal/jobs"
	"github.com/Rehan-4778/JobHunt-BE/internal/notifications"
	"github.com/Rehan-4778/JobHunt-BE/internal/users"
	"github.com/Rehan-4778/JobHunt-BE/pkg/auth/session"
	"github.com/Rehan-4778/JobHunt-BE/pkg/config"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	"github.com/Rehan-4778/JobHunt-BE/pkg/logger"
	"github.com/Rehan-4778/JobHunt-BE/pkg/metrics"
	"github.com/Rehan-4778/JobHunt-BE/pkg/redis"
)

// Deps carries everything the route table needs.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              *db.Client
	Redis           *redis.Client
	Sessions        session.AccessSessionChecker
	Uploader        uploads.Uploader
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsGatherer prometheus.Gatherer

	AuthService         auth.Service
	JobService          jobs.Service
	ApplicationService  applications.Service
	CategoryService     categories.Service
	NotificationService notifications.Service
	UserRepo            *users.Repository
}

// NewRouter assembles the full /api/v1 surface.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, d.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var dbPinger, redisPinger controllers.Pinger
	if d.DB != nil {
		dbPinger = d.DB
	}
	if d.Redis != nil {
		redisPinger = d.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbPinger, redisPinger, logg))
	})

	if d.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).
				Post("/register", authcontrollers.Register(d.AuthService, d.Uploader, cfg, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).
				Post("/login", authcontrollers.Login(d.AuthService, logg))
			r.Post("/forgetpassword", authcontrollers.ForgetPassword(d.AuthService, logg))
			r.Put("/resetpassword/{token}", authcontrollers.ResetPassword(d.AuthService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
				r.Get("/me", authcontrollers.Me(d.AuthService, logg))
				r.Put("/updatedetails", authcontrollers.UpdateDetails(d.AuthService, logg))
				r.Put("/updatepassword", authcontrollers.UpdatePassword(d.AuthService, logg))
				r.Post("/logout", authcontrollers.Logout(d.AuthService, logg))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(logg, enums.RoleAdmin.String()))
					r.Get("/pending-applications", authcontrollers.PendingApplications(d.AuthService, logg))
					r.Patch("/approve/{id}", authcontrollers.Approve(d.AuthService, logg))
				})
			})
		})

		r.Route("/jobs", func(r chi.Router) {
			r.With(middleware.OptionalAuth(cfg.JWT, d.Sessions)).
				Get("/", jobcontrollers.List(d.JobService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(logg, enums.RoleEmployer.String()))
					r.Post("/", jobcontrollers.Create(d.JobService, logg))
					r.Get("/my/jobs", jobcontrollers.MyJobs(d.JobService, logg))
					r.Get("/stats", jobcontrollers.Stats(d.JobService, logg))
					r.Put("/{id}", jobcontrollers.Update(d.JobService, logg))
					r.Patch("/{id}/status", jobcontrollers.UpdateStatus(d.JobService, logg))
				})

				// admins may remove postings but never manage them
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(logg, enums.RoleEmployer.String(), enums.RoleAdmin.String()))
					r.Delete("/{id}", jobcontrollers.Delete(d.JobService, logg))
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(logg, enums.RoleUser.String()))
					r.Get("/saved", jobcontrollers.SavedJobs(d.JobService, logg))
					r.Post("/{id}/save", jobcontrollers.Save(d.JobService, logg))
					r.Delete("/{id}/save", jobcontrollers.Unsave(d.JobService, logg))
				})
			})

			r.Get("/{id}", jobcontrollers.GetByID(d.JobService, logg))
		})

		r.Route("/applications", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.RoleUser.String()))
				r.Get("/my", applicationcontrollers.ListMine(d.ApplicationService, logg))
				r.Get("/check/{jobId}", applicationcontrollers.CheckStatus(d.ApplicationService, logg))
				r.Post("/{jobId}", applicationcontrollers.Submit(d.ApplicationService, d.UserRepo, d.Uploader, cfg, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.RoleEmployer.String()))
				r.Get("/", applicationcontrollers.ListForEmployer(d.ApplicationService, logg))
				r.Get("/job/{jobId}", applicationcontrollers.ListForJob(d.ApplicationService, logg))
				r.Patch("/{id}/status", applicationcontrollers.UpdateStatus(d.ApplicationService, logg))
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categorycontrollers.List(d.CategoryService, logg))
			r.Get("/active", categorycontrollers.ListActive(d.CategoryService, logg))
			r.Get("/{id}", categorycontrollers.Get(d.CategoryService, logg))
			r.Get("/{id}/jobs", categorycontrollers.Jobs(d.CategoryService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
				r.Use(middleware.RequireRole(logg, enums.RoleAdmin.String()))
				r.Post("/", categorycontrollers.Create(d.CategoryService, logg))
				r.Put("/{id}", categorycontrollers.Update(d.CategoryService, logg))
				r.Patch("/{id}/toggle", categorycontrollers.Toggle(d.CategoryService, logg))
				r.Delete("/{id}", categorycontrollers.Delete(d.CategoryService, logg))
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
			r.Get("/", notificationcontrollers.List(d.NotificationService, logg))
			r.Get("/unread-count", notificationcontrollers.UnreadCount(d.NotificationService, logg))
			r.Patch("/read-all", notificationcontrollers.MarkAllRead(d.NotificationService, logg))
			r.Patch("/{id}/read", notificationcontrollers.MarkRead(d.NotificationService, logg))
			r.Delete("/{id}", notificationcontrollers.Delete(d.NotificationService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
			r.Use(middleware.RequireRole(logg, enums.RoleAdmin.String()))
			r.Get("/{role}", usercontrollers.ListByRole(d.UserRepo, logg))
		})
	})

	return r
}
