// internal/app/features/assignments/routes.go
package assignments

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the assignments feature; it is mounted
// under /assignments.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// RUNS
	r.Post("/stratified", h.HandleStratified)
	r.Post("/optimized", h.HandleOptimized)

	// ADMIN READS
	r.Get("/oversized-rooms", h.ServeOversizedRooms)
	r.Get("/eligible-scopes", h.ServeEligibleScopes)

	return r
}
