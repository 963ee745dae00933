package service

import (
	"context"
	"fmt"

	"github.com/avilkin/blog-service/internal/models"
)

// CreatePost creates a post for the authenticated author. The author id
// comes from verified session claims, never from client input.
func (s *Service) CreatePost(ctx context.Context, authorID int64, title, summary, content, cover string) (*models.Post, error) {
	post := &models.Post{
		Title:    title,
		Summary:  summary,
		Content:  content,
		Cover:    cover,
		AuthorID: authorID,
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.log.Infof("Post created: %d by user %d", post.ID, authorID)
	return post, nil
}

// UpdatePost applies new field values to a post after checking that the
// requester is its author. The cover is replaced only when a new one was
// uploaded; author and creation time never change.
func (s *Service) UpdatePost(ctx context.Context, postID, requesterID int64, title, summary, content, newCover string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != requesterID {
		return nil, models.ErrNotAuthor
	}

	post.Title = title
	post.Summary = summary
	post.Content = content
	if newCover != "" {
		post.Cover = newCover
	}

	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	s.log.Infof("Post updated: %d by user %d", post.ID, requesterID)
	return post, nil
}

// SearchPosts lists the newest posts, optionally filtered by a
// case-insensitive substring over title, summary and content.
func (s *Service) SearchPosts(ctx context.Context, term string) ([]models.Post, error) {
	posts, err := s.posts.SearchPosts(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	return posts, nil
}

// GetPost returns a single post with its author's username resolved.
func (s *Service) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	return s.posts.GetPostByID(ctx, id)
}
