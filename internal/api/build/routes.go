package build

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers build routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/aibuilder", h.GenerateBuild)

	r.Route("/builds", func(r chi.Router) {
		r.Post("/", h.CreateBuild)
		r.Get("/", h.ListBuilds)

		r.Route("/{build_id}", func(r chi.Router) {
			r.Get("/", h.GetBuild)
			r.Put("/", h.UpdateBuild)
			r.Delete("/", h.DeleteBuild)
			r.Get("/export", h.ExportBuild)
		})
	})
}
