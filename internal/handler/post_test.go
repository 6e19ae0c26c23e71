package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/postboard/postboard/internal/model"
)

func TestPostHandler_Create(t *testing.T) {
	env := newTestEnv(t)
	author := env.store.AddUser("alice@prisma.io")

	body := `{"title":"Hello","content":"World","authorEmail":"alice@prisma.io"}`
	rec := env.do(t, http.MethodPost, "/post", strings.NewReader(body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	post := decodeJSON[model.Post](t, rec)
	if post.AuthorID != author.ID {
		t.Errorf("expected authorId %d, got %d", author.ID, post.AuthorID)
	}
	if post.Title != "Hello" {
		t.Errorf("expected title Hello, got %s", post.Title)
	}
	if post.Content == nil || *post.Content != "World" {
		t.Errorf("expected content World, got %v", post.Content)
	}
	if post.Published {
		t.Errorf("expected new post to be a draft")
	}
}

func TestPostHandler_Create_UnknownAuthor(t *testing.T) {
	env := newTestEnv(t)

	body := `{"title":"Hello","authorEmail":"ghost@prisma.io"}`
	rec := env.do(t, http.MethodPost, "/post", strings.NewReader(body))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); !strings.Contains(msg, "ghost@prisma.io") {
		t.Errorf("expected error to name the email, got %q", msg)
	}
}

func TestPostHandler_Create_MissingTitle(t *testing.T) {
	bodies := map[string]string{
		"absent": `{"content":"body","authorEmail":"alice@prisma.io"}`,
		"null":   `{"title":null,"authorEmail":"alice@prisma.io"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			author := env.store.AddUser("alice@prisma.io")

			rec := env.do(t, http.MethodPost, "/post", strings.NewReader(body))
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected status 500, got %d (%s)", rec.Code, rec.Body.String())
			}
			if msg := decodeError(t, rec); !strings.Contains(msg, "title") {
				t.Errorf("expected error to mention the title, got %q", msg)
			}

			rec = env.do(t, http.MethodGet, "/user/"+itoa(author.ID)+"/drafts", nil)
			if posts := decodeJSON[[]model.Post](t, rec); len(posts) != 0 {
				t.Errorf("expected no post stored, got %d", len(posts))
			}
		})
	}
}

func TestPostHandler_Create_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/post", strings.NewReader(`{"title":`))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg == "" {
		t.Errorf("expected an error message")
	}
}

func TestPostHandler_Get(t *testing.T) {
	env := newTestEnv(t)
	author := env.store.AddUser("bob@prisma.io")
	existing := env.store.AddPost(author.ID, "Existing", true)

	rec := env.do(t, http.MethodGet, "/post/"+itoa(existing.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	post := decodeJSON[model.Post](t, rec)
	if post.ID != existing.ID || post.Title != "Existing" {
		t.Errorf("unexpected post: %+v", post)
	}
}

func TestPostHandler_Get_CoercesID(t *testing.T) {
	env := newTestEnv(t)
	author := env.store.AddUser("bob@prisma.io")
	existing := env.store.AddPost(author.ID, "Existing", true)

	rec := env.do(t, http.MethodGet, "/post/"+itoa(existing.ID)+"abc", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	post := decodeJSON[model.Post](t, rec)
	if post.ID != existing.ID {
		t.Errorf("expected post %d, got %d", existing.ID, post.ID)
	}
}

func TestPostHandler_Get_NotFound(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{name: "unknown id", id: "4242"},
		{name: "non numeric id", id: "abc"},
		{name: "beyond int4 range", id: "3000000000"},
		{name: "beyond int64 range", id: "99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(t, http.MethodGet, "/post/"+tt.id, nil)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("expected status 404, got %d", rec.Code)
			}

			msg := decodeError(t, rec)
			if msg != "Post with ID "+tt.id+" not found" {
				t.Errorf("unexpected error message: %q", msg)
			}
		})
	}
}

func TestPostHandler_ViewsAndPublishAreNoops(t *testing.T) {
	for _, path := range []string{"/post/%d/views", "/publish/%d"} {
		t.Run(path, func(t *testing.T) {
			env := newTestEnv(t)
			author := env.store.AddUser("carol@prisma.io")
			existing := env.store.AddPost(author.ID, "Draft", false)

			rec := env.do(t, http.MethodPut, formatPath(path, existing.ID), nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}

			post := decodeJSON[model.Post](t, rec)
			if post.Published != existing.Published {
				t.Errorf("expected published unchanged (%v), got %v", existing.Published, post.Published)
			}
			if post.ViewCount != existing.ViewCount {
				t.Errorf("expected viewCount unchanged (%d), got %d", existing.ViewCount, post.ViewCount)
			}
			if !post.UpdatedAt.Equal(existing.UpdatedAt) {
				t.Errorf("expected updatedAt unchanged")
			}
		})
	}
}

func TestPostHandler_Update_NotFound(t *testing.T) {
	for _, path := range []string{"/post/%d/views", "/publish/%d"} {
		t.Run(path, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(t, http.MethodPut, formatPath(path, 99), nil)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("expected status 404, got %d", rec.Code)
			}
			if msg := decodeError(t, rec); msg != "Post with ID 99 does not exist" {
				t.Errorf("unexpected error message: %q", msg)
			}
		})
	}
}

func TestPostHandler_DeleteThenGet(t *testing.T) {
	env := newTestEnv(t)
	author := env.store.AddUser("dave@prisma.io")
	existing := env.store.AddPost(author.ID, "Short lived", true)
	path := "/post/" + itoa(existing.ID)

	rec := env.do(t, http.MethodDelete, path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	deleted := decodeJSON[model.Post](t, rec)
	if deleted.ID != existing.ID {
		t.Errorf("expected deleted post %d, got %d", existing.ID, deleted.ID)
	}

	rec = env.do(t, http.MethodGet, path, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, path, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on second delete, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Post with ID "+itoa(existing.ID)+" does not exist" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestPostHandler_Feed_OnlyPublished(t *testing.T) {
	env := newTestEnv(t)
	author := env.store.AddUser("erin@prisma.io")
	env.store.AddPost(author.ID, "draft one", false)
	first := env.store.AddPost(author.ID, "published one", true)
	env.store.AddPost(author.ID, "draft two", false)
	second := env.store.AddPost(author.ID, "published two", true)

	queries := []string{
		"/feed",
		"/feed?searchString=draft",
		"/feed?orderBy=desc",
		"/feed?skip=abc&take=-1",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, q, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}

			posts := decodeJSON[[]model.Post](t, rec)
			if len(posts) != 2 {
				t.Fatalf("expected 2 published posts, got %d", len(posts))
			}
			if posts[0].ID != first.ID || posts[1].ID != second.ID {
				t.Errorf("unexpected posts: %+v", posts)
			}
			for _, p := range posts {
				if !p.Published {
					t.Errorf("feed returned draft %d", p.ID)
				}
			}
		})
	}
}

func TestPostHandler_Feed_SkipTake(t *testing.T) {
	env := newTestEnv(t)
	author := env.store.AddUser("frank@prisma.io")
	env.store.AddPost(author.ID, "p1", true)
	p2 := env.store.AddPost(author.ID, "p2", true)
	env.store.AddPost(author.ID, "p3", true)

	rec := env.do(t, http.MethodGet, "/feed?skip=1&take=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	posts := decodeJSON[[]model.Post](t, rec)
	if len(posts) != 1 || posts[0].ID != p2.ID {
		t.Fatalf("expected only post %d, got %+v", p2.ID, posts)
	}
}

func TestPostHandler_Feed_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/feed", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected [], got %s", body)
	}
}

func TestPostHandler_Feed_StoreError(t *testing.T) {
	env := newTestEnv(t)
	env.store.Err = errors.New("db down")

	rec := env.do(t, http.MethodGet, "/feed", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Something went wrong!" {
		t.Errorf("unexpected error message: %q", msg)
	}
}
