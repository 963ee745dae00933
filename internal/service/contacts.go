package service

import (
	"context"
	"fmt"

	"github.com/avilkin/blog-service/internal/models"
)

// SubmitContact stores a contact-form message. All three fields are
// required.
func (s *Service) SubmitContact(ctx context.Context, name, email, message string) (*models.Contact, error) {
	if name == "" || email == "" || message == "" {
		return nil, fmt.Errorf("%w: all fields are required", models.ErrValidation)
	}

	contact := &models.Contact{
		Name:    name,
		Email:   email,
		Message: message,
	}

	if err := s.contacts.CreateContact(ctx, contact); err != nil {
		return nil, err
	}

	s.log.Infof("Contact message received from %s", contact.Email)
	return contact, nil
}

// DeleteContact removes the newest contact record for the given email.
func (s *Service) DeleteContact(ctx context.Context, email string) (*models.Contact, error) {
	contact, err := s.contacts.DeleteContactByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	s.log.Infof("Contact message deleted for %s", contact.Email)
	return contact, nil
}
