package service

import (
	"context"
	"io"
	"testing"

	"github.com/avilkin/blog-service/internal/auth"
	"github.com/avilkin/blog-service/internal/config"
	"github.com/avilkin/blog-service/internal/models"
	"github.com/avilkin/blog-service/internal/oauth"
	"github.com/sirupsen/logrus"
)

// --- in-memory fakes ---

type fakeUserStore struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return models.ErrDuplicate
		}
	}
	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserStore) FindUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	for _, u := range f.users {
		if u.GoogleID == googleID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserStore) AttachGoogleID(ctx context.Context, userID int64, googleID string) error {
	u, ok := f.users[userID]
	if !ok {
		return models.ErrNotFound
	}
	u.GoogleID = googleID
	return nil
}

func (f *fakeUserStore) MarkVerified(ctx context.Context, userID int64) error {
	u, ok := f.users[userID]
	if !ok {
		return models.ErrNotFound
	}
	u.IsVerified = true
	return nil
}

type fakePostStore struct {
	nextID int64
	posts  map[int64]*models.Post

	searchOut []models.Post
	searchErr error
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[int64]*models.Post{}}
}

func (f *fakePostStore) CreatePost(ctx context.Context, post *models.Post) error {
	f.nextID++
	post.ID = f.nextID
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *fakePostStore) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakePostStore) UpdatePost(ctx context.Context, post *models.Post) error {
	stored, ok := f.posts[post.ID]
	if !ok {
		return models.ErrNotFound
	}
	stored.Title = post.Title
	stored.Summary = post.Summary
	stored.Content = post.Content
	stored.Cover = post.Cover
	return nil
}

func (f *fakePostStore) SearchPosts(ctx context.Context, term string) ([]models.Post, error) {
	return f.searchOut, f.searchErr
}

type fakeContactStore struct {
	nextID   int64
	contacts map[int64]*models.Contact
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{contacts: map[int64]*models.Contact{}}
}

func (f *fakeContactStore) CreateContact(ctx context.Context, contact *models.Contact) error {
	f.nextID++
	contact.ID = f.nextID
	clone := *contact
	f.contacts[contact.ID] = &clone
	return nil
}

func (f *fakeContactStore) DeleteContactByEmail(ctx context.Context, email string) (*models.Contact, error) {
	for id, c := range f.contacts {
		if c.Email == email {
			delete(f.contacts, id)
			return c, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeMailer struct {
	sentTo   []string
	sentLink []string
	err      error
}

func (f *fakeMailer) SendVerification(to, link string) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, to)
	f.sentLink = append(f.sentLink, link)
	return nil
}

type fakeVerifier struct {
	identity *oauth.Identity
	err      error
}

func (f *fakeVerifier) Verify(ctx context.Context, idToken string) (*oauth.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

// --- helpers ---

type testEnv struct {
	svc      *Service
	users    *fakeUserStore
	posts    *fakePostStore
	contacts *fakeContactStore
	tokens   *auth.Service
	mailer   *fakeMailer
	verifier *fakeVerifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := auth.NewService("test-secret")
	if err != nil {
		t.Fatalf("auth.NewService error: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &testEnv{
		users:    newFakeUserStore(),
		posts:    newFakePostStore(),
		contacts: newFakeContactStore(),
		tokens:   tokens,
		mailer:   &fakeMailer{},
		verifier: &fakeVerifier{},
	}
	cfg := &config.Config{PublicURL: "https://blog.example.com"}
	env.svc = NewService(env.users, env.posts, env.contacts, tokens, env.mailer, env.verifier, log, cfg)
	return env
}

// newTestEnvNoExtras builds a service without mailer and verifier, matching a
// deployment with verification and Google login disabled.
func newTestEnvNoExtras(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	cfg := &config.Config{}
	log := logrus.New()
	log.SetOutput(io.Discard)
	env.svc = NewService(env.users, env.posts, env.contacts, env.tokens, nil, nil, log, cfg)
	return env
}
