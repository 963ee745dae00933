package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avilkin/blog-service/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new user with hashed password. When email verification
// is enabled it also mails a verification link; the returned flag reports
// whether verification is pending.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, bool, error) {
	if username == "" || password == "" {
		return nil, false, fmt.Errorf("%w: username and password are required", models.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, false, err
	}

	if s.mailer == nil {
		s.log.Infof("User registered: %s", user.Username)
		return user, false, nil
	}

	token, err := s.tokens.IssueVerification(user.ID, verificationTTL)
	if err != nil {
		return nil, false, fmt.Errorf("failed to issue verification token: %w", err)
	}
	link := fmt.Sprintf("%s/verify?token=%s", s.config.PublicURL, token)
	if err := s.mailer.SendVerification(user.Username, link); err != nil {
		return nil, false, err
	}

	s.log.Infof("User registered, verification pending: %s", user.Username)
	return user, true, nil
}

// Login authenticates a user and returns a session token. An unknown
// username and a wrong password produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, "", models.ErrWrongCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", models.ErrWrongCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Username)
	return user, token, nil
}

// LoginWithGoogle resolves a verified Google identity to a local account and
// returns a session token. Resolution order: by Google subject, then by
// email (linking the subject in place), then a fresh verified account. The
// email match lets a pre-existing password account be claimed by a later
// Google login instead of creating a duplicate identity.
func (s *Service) LoginWithGoogle(ctx context.Context, idToken string) (*models.User, string, error) {
	if s.verifier == nil {
		return nil, "", fmt.Errorf("%w: google login is not enabled", models.ErrValidation)
	}

	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: google token verification failed", models.ErrValidation)
	}

	user, err := s.resolveGoogleUser(ctx, identity.Subject, identity.Email)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in via Google: %s", user.Username)
	return user, token, nil
}

func (s *Service) resolveGoogleUser(ctx context.Context, subject, email string) (*models.User, error) {
	if user, err := s.users.FindUserByGoogleID(ctx, subject); err == nil {
		return user, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	if user, err := s.users.FindUserByUsername(ctx, email); err == nil {
		if user.GoogleID == "" {
			if err := s.users.AttachGoogleID(ctx, user.ID, subject); err != nil {
				return nil, err
			}
			user.GoogleID = subject
			s.log.Infof("Linked Google identity to existing account: %s", user.Username)
		}
		return user, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		Username:     email,
		PasswordHash: models.OAuthPasswordSentinel,
		IsVerified:   true,
		GoogleID:     subject,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Infof("Created account from Google login: %s", user.Username)
	return user, nil
}

// Verify consumes an email-verification token and marks the account
// verified. It grants no session.
func (s *Service) Verify(ctx context.Context, token string) error {
	claims, err := s.tokens.ParseVerification(token)
	if err != nil {
		return err
	}
	if err := s.users.MarkVerified(ctx, claims.UserID); err != nil {
		return err
	}
	s.log.Infof("User verified: %d", claims.UserID)
	return nil
}
