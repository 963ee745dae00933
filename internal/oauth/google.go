package oauth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Identity is the verified result of a Google ID token: the stable
// third-party subject and the account email.
type Identity struct {
	Subject string
	Email   string
}

// GoogleVerifier validates Google ID tokens against a client ID audience.
type GoogleVerifier struct {
	clientID string
}

// NewGoogleVerifier initializes a new Google ID-token verifier
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// Verify checks the token's signature, expiry and audience and extracts the
// subject and email claims.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate google id token: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("google id token carries no email claim")
	}

	return &Identity{Subject: payload.Subject, Email: email}, nil
}
