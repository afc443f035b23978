package chatroom

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chatroom and message routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/chatrooms", func(r chi.Router) {
		r.Post("/", h.CreateChatroom)
		r.Get("/", h.ListChatrooms)

		r.Route("/{chatroom_id}", func(r chi.Router) {
			r.Get("/", h.GetChatroom)
			r.Delete("/", h.DeleteChatroom)

			r.Post("/messages", h.AddMessage)
			r.Delete("/messages/{message_id}", h.DeleteMessage)
		})
	})
}
