package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestPost_IsDraft(t *testing.T) {
	t.Parallel()

	if !(&Post{Published: false}).IsDraft() {
		t.Error("expected unpublished post to be a draft")
	}
	if (&Post{Published: true}).IsDraft() {
		t.Error("expected published post not to be a draft")
	}
}

func TestPost_JSONFieldNames(t *testing.T) {
	t.Parallel()

	p := &Post{
		ID:        1,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Title:     "Hello",
		ViewCount: 3,
		AuthorID:  2,
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	body := string(data)
	for _, key := range []string{`"authorId":2`, `"viewCount":3`, `"content":null`, `"published":false`, `"createdAt":`, `"updatedAt":`} {
		if !strings.Contains(body, key) {
			t.Errorf("expected %s in %s", key, body)
		}
	}
}

func TestUser_JSONNullName(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(&User{ID: 1, Email: "alice@prisma.io"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"id":1,"email":"alice@prisma.io","name":null}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
