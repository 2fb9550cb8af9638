package trigonometry

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all trigonometry endpoints onto the given router
// under the /trigonometry prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/trigonometry", func(r chi.Router) {
		r.Get("/", h.Hello)
		r.Get("/sin", h.Sin)
		r.Get("/cos", h.Cos)
		r.Get("/tan", h.Tan)
		r.Post("/calculate", h.Calculate)
	})
}
