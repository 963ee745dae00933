package service

import (
	"context"
	"time"

	"github.com/avilkin/blog-service/internal/auth"
	"github.com/avilkin/blog-service/internal/config"
	"github.com/avilkin/blog-service/internal/models"
	"github.com/avilkin/blog-service/internal/oauth"
	"github.com/sirupsen/logrus"
)

// UserStore is the slice of the repository the auth flows need.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	AttachGoogleID(ctx context.Context, userID int64, googleID string) error
	MarkVerified(ctx context.Context, userID int64) error
}

// PostStore is the slice of the repository the content flows need.
type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	SearchPosts(ctx context.Context, term string) ([]models.Post, error)
}

// ContactStore is the slice of the repository the contact form needs.
type ContactStore interface {
	CreateContact(ctx context.Context, contact *models.Contact) error
	DeleteContactByEmail(ctx context.Context, email string) (*models.Contact, error)
}

// Mailer sends account-verification links. Nil when email verification is
// disabled by configuration.
type Mailer interface {
	SendVerification(to, link string) error
}

// GoogleVerifier validates a Google ID token. Nil when Google login is
// disabled by configuration.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*oauth.Identity, error)
}

// Service handles business logic
type Service struct {
	users    UserStore
	posts    PostStore
	contacts ContactStore
	tokens   *auth.Service
	mailer   Mailer
	verifier GoogleVerifier
	log      *logrus.Logger
	config   *config.Config
}

// verificationTTL bounds how long an emailed verification link stays usable.
const verificationTTL = time.Hour

// NewService initializes a new service
func NewService(users UserStore, posts PostStore, contacts ContactStore,
	tokens *auth.Service, mailer Mailer, verifier GoogleVerifier,
	log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		users:    users,
		posts:    posts,
		contacts: contacts,
		tokens:   tokens,
		mailer:   mailer,
		verifier: verifier,
		log:      log,
		config:   cfg,
	}
}
