package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/boardinghub/boardinghub/internal/auth"
	applicationHandler "github.com/boardinghub/boardinghub/internal/http/application"
	billingHandler "github.com/boardinghub/boardinghub/internal/http/billing"
	exportHandler "github.com/boardinghub/boardinghub/internal/http/export"
	importHandler "github.com/boardinghub/boardinghub/internal/http/importreadings"
	"github.com/boardinghub/boardinghub/internal/http/middleware"
	notificationHandler "github.com/boardinghub/boardinghub/internal/http/notification"
	propertyHandler "github.com/boardinghub/boardinghub/internal/http/property"
	userHandler "github.com/boardinghub/boardinghub/internal/http/user"
	"github.com/boardinghub/boardinghub/internal/user"
)

func New(
	jwtManager *auth.Manager,
	allowedOrigins []string,
	usersV1 *userHandler.Handler,
	propertiesV1 *propertyHandler.Handler,
	billsV1 *billingHandler.Handler,
	applicationsV1 *applicationHandler.Handler,
	notificationsV1 *notificationHandler.Handler,
	importV1 *importHandler.Handler,
	exportV1 *exportHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", usersV1.PublicRoutes)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))

			r.Route("/users", usersV1.Routes)

			r.Route("/notifications", notificationsV1.Routes)

			r.Route("/properties", func(r chi.Router) {
				r.Use(middleware.RequireRole(string(user.RoleLandlord)))
				r.Use(chimiddleware.AllowContentType("application/json"))
				propertiesV1.Routes(r)
			})

			r.Route("/rooms", func(r chi.Router) {
				r.Use(middleware.RequireRole(string(user.RoleLandlord)))
				r.Use(chimiddleware.AllowContentType("application/json"))
				propertiesV1.RoomRoutes(r)
			})

			r.Route("/bills", func(r chi.Router) {
				r.Use(chimiddleware.AllowContentType("application/json"))
				billsV1.BillRoutes(r)
			})

			r.Route("/proofs", func(r chi.Router) {
				r.Use(chimiddleware.AllowContentType("application/json"))
				billsV1.ProofRoutes(r)
			})

			r.Route("/payments", func(r chi.Router) {
				billsV1.HistoryRoutes(r)
			})

			r.Route("/applications", func(r chi.Router) {
				r.Use(chimiddleware.AllowContentType("application/json"))
				applicationsV1.Routes(r)
			})

			r.Route("/readings", func(r chi.Router) {
				r.Use(middleware.RequireRole(string(user.RoleLandlord)))
				importV1.Routes(r)
			})

			r.Route("/export", func(r chi.Router) {
				r.Use(middleware.RequireRole(string(user.RoleLandlord)))
				r.Use(chimiddleware.AllowContentType("application/json"))
				exportV1.Routes(r)
			})
		})
	})

	return router
}
