package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/postboard/postboard/internal/model"
)

// Common errors for post repository operations.
var (
	ErrPostNotFound   = errors.New("post not found")
	ErrAuthorNotFound = errors.New("author not found")
	ErrTitleRequired  = errors.New("post title is required")
)

const postColumns = "id, created_at, updated_at, title, content, published, view_count, author_id"

// NewPost holds the fields needed to create a post.
// The author is resolved by email at insert time. A nil Title is sent as
// NULL and rejected by the column constraint.
type NewPost struct {
	Title       *string
	Content     *string
	AuthorEmail string
}

// PostFilter narrows ListPosts. Nil fields do not filter.
type PostFilter struct {
	AuthorID  *int64
	Published *bool
}

// Page limits a listing. Nil fields mean no offset or no limit.
type Page struct {
	Skip *int
	Take *int
}

// PostUpdate lists the columns to change. Nil fields are left untouched.
type PostUpdate struct {
	Title     *string
	Content   *string
	Published *bool
	ViewCount *int64
}

// IsEmpty returns true if the update changes nothing.
func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Published == nil && u.ViewCount == nil
}

// CreatePost inserts a post owned by the user with the given email.
// Returns ErrAuthorNotFound if no user has that email.
func (r *Repository) CreatePost(ctx context.Context, input NewPost) (*model.Post, error) {
	query := `
		INSERT INTO posts (title, content, author_id)
		SELECT $1, $2, id FROM users WHERE email = $3
		RETURNING ` + postColumns

	post, err := scanPost(r.pool.QueryRow(ctx, query, input.Title, input.Content, input.AuthorEmail))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrAuthorNotFound, input.AuthorEmail)
		}
		if isNotNullViolation(err) {
			return nil, fmt.Errorf("%w: %v", ErrTitleRequired, err)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// GetPost retrieves a post by its ID.
func (r *Repository) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by ID: %w", err)
	}

	return post, nil
}

// ListPosts retrieves posts matching the filter, ordered by ID.
func (r *Repository) ListPosts(ctx context.Context, filter PostFilter, page Page) ([]*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE TRUE`
	args := []any{}
	argIndex := 1

	if filter.AuthorID != nil {
		query += fmt.Sprintf(" AND author_id = $%d", argIndex)
		args = append(args, *filter.AuthorID)
		argIndex++
	}

	if filter.Published != nil {
		query += fmt.Sprintf(" AND published = $%d", argIndex)
		args = append(args, *filter.Published)
		argIndex++
	}

	query += " ORDER BY id"

	if page.Take != nil {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, *page.Take)
		argIndex++
	}

	if page.Skip != nil {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *page.Skip)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

// UpdatePost applies the update and returns the stored post.
// An empty update reads the post back unchanged.
func (r *Repository) UpdatePost(ctx context.Context, id int64, update PostUpdate) (*model.Post, error) {
	if update.IsEmpty() {
		return r.GetPost(ctx, id)
	}

	sets := make([]string, 0, 5)
	args := []any{id}
	argIndex := 2

	if update.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argIndex))
		args = append(args, *update.Title)
		argIndex++
	}
	if update.Content != nil {
		sets = append(sets, fmt.Sprintf("content = $%d", argIndex))
		args = append(args, *update.Content)
		argIndex++
	}
	if update.Published != nil {
		sets = append(sets, fmt.Sprintf("published = $%d", argIndex))
		args = append(args, *update.Published)
		argIndex++
	}
	if update.ViewCount != nil {
		sets = append(sets, fmt.Sprintf("view_count = $%d", argIndex))
		args = append(args, *update.ViewCount)
	}
	sets = append(sets, "updated_at = NOW()")

	query := `UPDATE posts SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + postColumns

	post, err := scanPost(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// DeletePost removes a post and returns it as it was before deletion.
func (r *Repository) DeletePost(ctx context.Context, id int64) (*model.Post, error) {
	query := `DELETE FROM posts WHERE id = $1 RETURNING ` + postColumns

	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	return post, nil
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Title,
		&post.Content,
		&post.Published,
		&post.ViewCount,
		&post.AuthorID,
	)
	return &post, err
}
