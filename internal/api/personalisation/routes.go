package personalisation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers personalisation routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/personalisation", func(r chi.Router) {
		r.Post("/", h.CreatePersonalisation)

		r.Route("/{personalisation_id}", func(r chi.Router) {
			r.Get("/", h.GetPersonalisation)
			r.Put("/", h.UpdatePersonalisation)
			r.Delete("/", h.DeletePersonalisation)
		})
	})
}
