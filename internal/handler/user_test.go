package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/postboard/postboard/internal/model"
)

func TestUserHandler_List(t *testing.T) {
	env := newTestEnv(t)
	alice := env.store.AddUser("alice@prisma.io")
	bob := env.store.AddUser("bob@prisma.io")

	rec := env.do(t, http.MethodGet, "/users", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	users := decodeJSON[[]model.User](t, rec)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Email != alice.Email || users[1].Email != bob.Email {
		t.Errorf("unexpected users: %+v", users)
	}
}

func TestUserHandler_List_StoreError(t *testing.T) {
	env := newTestEnv(t)
	env.store.Err = errors.New("db down")

	rec := env.do(t, http.MethodGet, "/users", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Something went wrong!" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestUserHandler_Drafts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.store.AddUser("alice@prisma.io")
	bob := env.store.AddUser("bob@prisma.io")

	aliceDraft := env.store.AddPost(alice.ID, "alice draft", false)
	env.store.AddPost(alice.ID, "alice published", true)
	env.store.AddPost(bob.ID, "bob draft", false)

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/user/%d/drafts", alice.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	drafts := decodeJSON[[]model.Post](t, rec)
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(drafts))
	}
	if drafts[0].ID != aliceDraft.ID {
		t.Errorf("expected draft %d, got %d", aliceDraft.ID, drafts[0].ID)
	}
	if drafts[0].Published || drafts[0].AuthorID != alice.ID {
		t.Errorf("unexpected draft: %+v", drafts[0])
	}
}

func TestUserHandler_Drafts_CoercesID(t *testing.T) {
	env := newTestEnv(t)
	alice := env.store.AddUser("alice@prisma.io")
	draft := env.store.AddPost(alice.ID, "alice draft", false)

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/user/%dx/drafts", alice.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	drafts := decodeJSON[[]model.Post](t, rec)
	if len(drafts) != 1 || drafts[0].ID != draft.ID {
		t.Errorf("expected draft %d, got %+v", draft.ID, drafts)
	}
}

func TestUserHandler_Drafts_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/user/abc/drafts", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "Something went wrong!" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func formatPath(pattern string, id int64) string {
	return fmt.Sprintf(pattern, id)
}
