package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors surfaced to callers. ErrTokenMissing is produced by the
// middleware when no cookie is present, so handlers can answer differently
// for "no token supplied" and "token present but bad".
var (
	ErrTokenMissing = errors.New("token must be provided")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// PurposeVerify marks single-purpose email-verification tokens. They carry
// only a user id and grant no session.
const PurposeVerify = "verify"

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = time.Hour

// Claims are the identity facts embedded in a signed token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"uid"`
	Username string `json:"username,omitempty"`
	Purpose  string `json:"purpose,omitempty"`
}

// Service signs and verifies tokens with a process-wide secret.
type Service struct {
	secret []byte
}

// NewService creates a token service. The secret is mandatory; there is no
// built-in fallback.
func NewService(secret string) (*Service, error) {
	if secret == "" {
		return nil, errors.New("signing secret is empty")
	}
	return &Service{secret: []byte(secret)}, nil
}

// Issue signs a session token for the given user, valid for SessionTTL.
func (s *Service) Issue(userID int64, username string) (string, error) {
	return s.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL)),
		},
		UserID:   userID,
		Username: username,
	})
}

// IssueVerification signs an email-verification token carrying only the user
// id. Consuming it flips the account's verified flag and nothing else.
func (s *Service) IssueVerification(userID int64, ttl time.Duration) (string, error) {
	return s.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		UserID:  userID,
		Purpose: PurposeVerify,
	})
}

func (s *Service) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies the signature and expiry and returns the embedded claims.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// ParseSession is Parse restricted to session tokens: a verification token is
// rejected even though its signature is valid.
func (s *Service) ParseSession(tokenString string) (*Claims, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ParseVerification is Parse restricted to email-verification tokens.
func (s *Service) ParseVerification(tokenString string) (*Claims, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != PurposeVerify {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
