package arithmetic

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all arithmetic endpoints onto the given router
// under the /arithmetic prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/arithmetic", func(r chi.Router) {
		r.Get("/", h.Hello)
		r.Post("/add", h.Add)
		r.Post("/subtract", h.Subtract)
		r.Post("/multiply", h.Multiply)
		r.Post("/divide", h.Divide)
		r.Post("/chain", h.Chain)
	})
}
