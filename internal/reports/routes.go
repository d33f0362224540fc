package reports

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/WardLink/WL-Backend/internal/middleware"
)

// SetupRoutes mounts every report endpoint behind the session check and a
// per-client rate limit. The fetcher is injected so tests can stub sessions.
func (s *Service) SetupRoutes(fetcher middleware.SessionFetcher) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.SessionMiddleware(fetcher))
	r.Use(middleware.RateLimitMiddleware(rate.Limit(10), 30))

	r.Get("/ward-leaders", s.WardLeadersHandler)
	r.Get("/ward-leaders-statistics", s.WardLeadersStatisticsHandler)
	r.Get("/ward-leaders/{leaderId}", s.WardLeaderHandler)
	r.Put("/ward-leaders/{leaderId}/print-status", s.UpdateWardLeaderPrintStatusHandler)
	r.Get("/ward-leaders/{leaderId}/households", s.HouseholdsForLeaderHandler)

	r.Get("/households", s.HouseholdsHandler)
	r.Get("/households/{householdId}/members", s.HouseholdMembersHandler)

	r.Get("/barangay-coordinators", s.CoordinatorsHandler)
	r.Get("/barangay-coordinators/{coordinatorId}/ward-leaders", s.CoordinatorWardLeadersHandler)

	r.Get("/printing/households", s.PrintingHouseholdsHandler)
	r.Post("/printing/households/mark-printed", s.MarkHouseholdsPrintedHandler)
	r.Get("/printing/ward-leaders", s.PrintingWardLeadersHandler)
	r.Post("/printing/ward-leaders/mark-printed", s.MarkWardLeadersPrintedHandler)
	r.Get("/printing/barangay-coordinators", s.PrintingCoordinatorsHandler)
	r.Post("/printing/barangay-coordinators/mark-printed", s.MarkCoordinatorsPrintedHandler)

	r.Get("/print-statistics", s.PrintStatisticsHandler)
	r.Get("/print-statistics-by-barangay", s.PrintStatisticsByBarangayHandler)

	return r
}
