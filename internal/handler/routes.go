package handler

import "github.com/go-chi/chi/v5"

// Handlers bundles every handler the route table dispatches to.
type Handlers struct {
	Root   *Handler
	Health *HealthHandler
	Posts  *PostHandler
	Users  *UserHandler
}

// RegisterRoutes mounts the public API on r.
func RegisterRoutes(r chi.Router, h Handlers) {
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)

	r.Get("/", h.Root.Welcome)

	r.Post("/post", h.Posts.Create)
	r.Get("/post/{id}", h.Posts.Get)
	r.Put("/post/{id}/views", h.Posts.IncrementViews)
	r.Delete("/post/{id}", h.Posts.Delete)
	r.Put("/publish/{id}", h.Posts.TogglePublish)
	r.Get("/feed", h.Posts.Feed)

	r.Get("/users", h.Users.List)
	r.Get("/user/{id}/drafts", h.Users.Drafts)

	r.NotFound(h.Root.NotFound)
	r.MethodNotAllowed(h.Root.MethodNotAllowed)
}
