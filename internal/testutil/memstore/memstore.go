// Package memstore is an in-memory stand-in for the Postgres repository,
// used by handler and router tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/postboard/postboard/internal/model"
	"github.com/postboard/postboard/internal/repository"
)

// Store keeps users and posts in maps guarded by a mutex.
// Set Err to make every operation fail with it.
type Store struct {
	mu     sync.Mutex
	users  map[int64]*model.User
	posts  map[int64]*model.Post
	nextID int64

	Err error
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users: make(map[int64]*model.User),
		posts: make(map[int64]*model.Post),
	}
}

// AddUser inserts a user and returns it.
func (s *Store) AddUser(email string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	u := &model.User{ID: s.nextID, Email: email}
	s.users[u.ID] = u
	return u
}

// AddPost inserts a post for the author and returns it.
func (s *Store) AddPost(authorID int64, title string, published bool) *model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now().UTC()
	p := &model.Post{
		ID:        s.nextID,
		CreatedAt: now,
		UpdatedAt: now,
		Title:     title,
		Published: published,
		AuthorID:  authorID,
	}
	s.posts[p.ID] = p
	return p
}

// Ping reports the injected error, if any.
func (s *Store) Ping(ctx context.Context) error {
	return s.Err
}

// ListUsers returns all users ordered by ID.
func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// CreatePost links the post to the user with the given email.
func (s *Store) CreatePost(ctx context.Context, input repository.NewPost) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	var author *model.User
	for _, u := range s.users {
		if u.Email == input.AuthorEmail {
			author = u
			break
		}
	}
	if author == nil {
		return nil, fmt.Errorf("%w: %s", repository.ErrAuthorNotFound, input.AuthorEmail)
	}
	if input.Title == nil {
		return nil, fmt.Errorf("%w: null value in column \"title\"", repository.ErrTitleRequired)
	}

	s.nextID++
	now := time.Now().UTC()
	p := &model.Post{
		ID:        s.nextID,
		CreatedAt: now,
		UpdatedAt: now,
		Title:     *input.Title,
		Content:   input.Content,
		AuthorID:  author.ID,
	}
	s.posts[p.ID] = p

	cp := *p
	return &cp, nil
}

// GetPost returns the post or repository.ErrPostNotFound.
func (s *Store) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

// ListPosts filters and pages posts ordered by ID.
func (s *Store) ListPosts(ctx context.Context, filter repository.PostFilter, page repository.Page) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	posts := make([]*model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.Published != nil && p.IsDraft() == *filter.Published {
			continue
		}
		cp := *p
		posts = append(posts, &cp)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })

	if page.Skip != nil {
		if *page.Skip >= len(posts) {
			posts = posts[:0]
		} else {
			posts = posts[*page.Skip:]
		}
	}
	if page.Take != nil && *page.Take < len(posts) {
		posts = posts[:*page.Take]
	}

	return posts, nil
}

// UpdatePost applies the non-nil fields of the update.
func (s *Store) UpdatePost(ctx context.Context, id int64, update repository.PostUpdate) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}

	if !update.IsEmpty() {
		if update.Title != nil {
			p.Title = *update.Title
		}
		if update.Content != nil {
			p.Content = update.Content
		}
		if update.Published != nil {
			p.Published = *update.Published
		}
		if update.ViewCount != nil {
			p.ViewCount = *update.ViewCount
		}
		p.UpdatedAt = time.Now().UTC()
	}

	cp := *p
	return &cp, nil
}

// DeletePost removes the post and returns it.
func (s *Store) DeletePost(ctx context.Context, id int64) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	delete(s.posts, id)
	return p, nil
}
