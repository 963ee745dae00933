package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avilkin/blog-service/internal/models"
)

// CreateContact creates a new contact-form record in the database
func (r *Repository) CreateContact(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (name, email, message, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, contact.Name, contact.Email, contact.Message).
		Scan(&contact.ID, &contact.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// DeleteContactByEmail deletes the newest contact record for the given email
// and returns it.
func (r *Repository) DeleteContactByEmail(ctx context.Context, email string) (*models.Contact, error) {
	query := `
		DELETE FROM contacts
		WHERE id = (SELECT id FROM contacts WHERE email = $1 ORDER BY created_at DESC LIMIT 1)
		RETURNING id, name, email, message, created_at`
	contact := &models.Contact{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&contact.ID, &contact.Name, &contact.Email, &contact.Message, &contact.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete contact: %w", err)
	}
	return contact, nil
}
