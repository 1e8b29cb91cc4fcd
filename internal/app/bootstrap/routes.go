// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"memberdash/internal/app/dashboard"
	attendancefeature "memberdash/internal/app/features/attendance"
	checkinfeature "memberdash/internal/app/features/checkin"
	dashboardfeature "memberdash/internal/app/features/dashboard"
	healthfeature "memberdash/internal/app/features/health"
	paymentsfeature "memberdash/internal/app/features/payments"
	"memberdash/internal/app/store/records"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The service surface is the JSON API
// the mobile client consumes, scoped per member:
//
//	GET  /health
//	GET  /api/members/{memberID}/dashboard
//	GET  /api/members/{memberID}/memberships
//	GET  /api/members/{memberID}/attendance
//	GET  /api/members/{memberID}/attendance/status
//	GET  /api/members/{memberID}/payments
//	POST /api/members/{memberID}/payments/notifications
//	POST /api/members/{memberID}/visits/check-in
//	POST /api/members/{memberID}/visits/check-out
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	repo := records.New(deps.MongoDatabase, logger)
	aggregator := dashboard.New(repo, logger).WithRecentVisits(appCfg.RecentVisits)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	dashboardHandler := dashboardfeature.NewHandler(aggregator, repo, logger)
	attendanceHandler := attendancefeature.NewHandler(repo, logger)
	paymentsHandler := paymentsfeature.NewHandler(repo, logger)
	checkinHandler := checkinfeature.NewHandler(repo, logger)

	r.Route("/api/members/{memberID}", func(r chi.Router) {
		r.Mount("/attendance", attendancefeature.Routes(attendanceHandler))
		r.Mount("/payments", paymentsfeature.Routes(paymentsHandler))
		r.Mount("/visits", checkinfeature.Routes(checkinHandler))
		r.Mount("/", dashboardfeature.Routes(dashboardHandler))
	})

	return r, nil
}
