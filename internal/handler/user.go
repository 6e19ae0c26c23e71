package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/postboard/postboard/internal/model"
	"github.com/postboard/postboard/internal/repository"
)

// UserStore is the storage contract the user routes need.
type UserStore interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
}

// UserHandler handles HTTP requests for users and their drafts.
type UserHandler struct {
	users  UserStore
	posts  PostStore
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserStore, posts PostStore, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		posts:  posts,
		logger: logger,
	}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeInternalError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// Drafts handles GET /user/{id}/drafts.
func (h *UserHandler) Drafts(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")

	authorID, ok := parseID(rawID)
	if !ok {
		writeInternalError(w, r, h.logger, fmt.Errorf("invalid user id %q", rawID))
		return
	}

	published := false
	drafts, err := h.posts.ListPosts(r.Context(),
		repository.PostFilter{AuthorID: &authorID, Published: &published},
		repository.Page{},
	)
	if err != nil {
		writeInternalError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, drafts)
}
