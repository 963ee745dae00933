package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/avilkin/blog-service/internal/models"
)

// searchLimit is a hard cap on list results, not a page size.
const searchLimit = 20

// CreatePost creates a new post in the database
func (r *Repository) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, summary, content, cover, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, post.Title, post.Summary, post.Content, post.Cover, post.AuthorID).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// GetPostByID retrieves a post with its author's username resolved.
func (r *Repository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT p.id, p.title, p.summary, p.content, p.cover, p.author_id, u.username, p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`
	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.Title, &post.Summary, &post.Content, &post.Cover,
			&post.AuthorID, &post.AuthorUsername, &post.CreatedAt, &post.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return post, nil
}

// UpdatePost persists the mutable fields of a post. The author and creation
// time are never touched.
func (r *Repository) UpdatePost(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $2, summary = $3, content = $4, cover = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, post.ID, post.Title, post.Summary, post.Content, post.Cover).
		Scan(&post.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// likeEscaper neutralizes ILIKE metacharacters so a search term matches as a
// literal substring.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchPosts returns the newest posts first, capped at 20 records. When term
// is non-empty it must match title, summary or content case-insensitively.
func (r *Repository) SearchPosts(ctx context.Context, term string) ([]models.Post, error) {
	query := `
		SELECT p.id, p.title, p.summary, p.content, p.cover, p.author_id, u.username, p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE $1 = '' OR p.title ILIKE '%' || $1 || '%' OR p.summary ILIKE '%' || $1 || '%' OR p.content ILIKE '%' || $1 || '%'
		ORDER BY p.created_at DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, likeEscaper.Replace(term), searchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Summary, &post.Content, &post.Cover,
			&post.AuthorID, &post.AuthorUsername, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}
	return posts, nil
}
