package service

import (
	"context"
	"testing"

	"github.com/avilkin/blog-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitContact_RequiresAllFields(t *testing.T) {
	t.Parallel()
	env := newTestEnvNoExtras(t)
	ctx := context.Background()

	cases := [][3]string{
		{"", "a@b.c", "hello"},
		{"Ann", "", "hello"},
		{"Ann", "a@b.c", ""},
	}
	for _, c := range cases {
		_, err := env.svc.SubmitContact(ctx, c[0], c[1], c[2])
		assert.ErrorIs(t, err, models.ErrValidation)
	}
	assert.Empty(t, env.contacts.contacts, "no record may be created on validation failure")
}

func TestSubmitAndDeleteContact(t *testing.T) {
	t.Parallel()
	env := newTestEnvNoExtras(t)
	ctx := context.Background()

	contact, err := env.svc.SubmitContact(ctx, "Ann", "ann@example.com", "hello there")
	require.NoError(t, err)
	assert.NotZero(t, contact.ID)

	deleted, err := env.svc.DeleteContact(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, contact.ID, deleted.ID)

	_, err = env.svc.DeleteContact(ctx, "ann@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
