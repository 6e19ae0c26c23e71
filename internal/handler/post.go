package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/postboard/postboard/internal/handler/dto"
	"github.com/postboard/postboard/internal/model"
	"github.com/postboard/postboard/internal/repository"
)

// PostStore is the storage contract the post routes need.
type PostStore interface {
	CreatePost(ctx context.Context, input repository.NewPost) (*model.Post, error)
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	ListPosts(ctx context.Context, filter repository.PostFilter, page repository.Page) ([]*model.Post, error)
	UpdatePost(ctx context.Context, id int64, update repository.PostUpdate) (*model.Post, error)
	DeletePost(ctx context.Context, id int64) (*model.Post, error)
}

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	posts  PostStore
	logger *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts PostStore, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		posts:  posts,
		logger: logger,
	}
}

// Create handles POST /post.
// Any failure, including an unknown author email, is a 500 carrying the error text.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	post, err := h.posts.CreatePost(r.Context(), repository.NewPost{
		Title:       req.Title,
		Content:     req.Content,
		AuthorEmail: req.AuthorEmail,
	})
	if err != nil {
		h.logger.Warn("post_create_failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info("post_created",
		"post_id", post.ID,
		"author_id", post.AuthorID,
	)

	writeJSON(w, http.StatusOK, post)
}

// Get handles GET /post/{id}.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")

	id, ok := parseID(rawID)
	if !ok {
		writeError(w, http.StatusNotFound, notFoundMessage(rawID))
		return
	}

	post, err := h.posts.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, notFoundMessage(rawID))
			return
		}
		writeInternalError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// IncrementViews handles PUT /post/{id}/views.
// The view counter is not changed yet; the stored post is returned as is.
func (h *PostHandler) IncrementViews(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, repository.PostUpdate{})
}

// TogglePublish handles PUT /publish/{id}.
// The published flag is not flipped yet; the stored post is returned as is.
func (h *PostHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, repository.PostUpdate{})
}

func (h *PostHandler) update(w http.ResponseWriter, r *http.Request, update repository.PostUpdate) {
	rawID := chi.URLParam(r, "id")

	id, ok := parseID(rawID)
	if !ok {
		writeError(w, http.StatusNotFound, doesNotExistMessage(rawID))
		return
	}

	post, err := h.posts.UpdatePost(r.Context(), id, update)
	if err != nil {
		h.logger.Warn("post_update_failed", "post_id", rawID, "error", err)
		writeError(w, http.StatusNotFound, doesNotExistMessage(rawID))
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /post/{id} and returns the deleted post.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")

	id, ok := parseID(rawID)
	if !ok {
		writeError(w, http.StatusNotFound, doesNotExistMessage(rawID))
		return
	}

	post, err := h.posts.DeletePost(r.Context(), id)
	if err != nil {
		h.logger.Warn("post_delete_failed", "post_id", rawID, "error", err)
		writeError(w, http.StatusNotFound, doesNotExistMessage(rawID))
		return
	}

	h.logger.Info("post_deleted", "post_id", post.ID)

	writeJSON(w, http.StatusOK, post)
}

// Feed handles GET /feed.
// Only published posts are listed. searchString and orderBy are accepted
// but not applied; skip and take page the result.
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	query := dto.ParseFeedQuery(r.URL.Query())

	if query.SearchString != "" || query.OrderBy != "" {
		h.logger.Debug("feed_filters_ignored",
			"search_string", query.SearchString,
			"order_by", query.OrderBy,
		)
	}

	published := true
	posts, err := h.posts.ListPosts(r.Context(),
		repository.PostFilter{Published: &published},
		repository.Page{Skip: query.Skip, Take: query.Take},
	)
	if err != nil {
		writeInternalError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// parseID coerces a path id; "12abc" resolves to 12.
func parseID(raw string) (int64, bool) {
	return dto.ParseLeadingInt(raw)
}

func notFoundMessage(id string) string {
	return fmt.Sprintf("Post with ID %s not found", id)
}

func doesNotExistMessage(id string) string {
	return fmt.Sprintf("Post with ID %s does not exist", id)
}
