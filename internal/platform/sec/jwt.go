// Copyright (c) 2026 Taskforge. All rights reserved.

package sec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a bearer token.
//
// # Why only registered claims?
//
// The token asserts exactly one thing: the subject (user ID) it was issued
// for, and when that assertion expires. It carries no roles, no scopes, and
// no secret data — the payload is integrity-protected, not confidential.
type AuthClaims struct {
	jwt.RegisteredClaims
}

// UserID returns the subject identifier the token was issued for.
func (claims *AuthClaims) UserID() string {
	return claims.Subject
}

// TokenStatus classifies the outcome of inspecting a bearer token.
//
// Expiry of a well-signed token is a common, expected condition, so callers
// get a classification instead of being forced to branch on error types.
type TokenStatus int

const (
	// StatusOK means the signature verified and the token is not expired.
	StatusOK TokenStatus = iota

	// StatusExpired means the signature verified but the token is past its expiry.
	StatusExpired

	// StatusInvalid means the token is malformed, carries an unsupported
	// algorithm, or its signature does not verify.
	StatusInvalid
)

// String returns the log-friendly name of the status.
func (status TokenStatus) String() string {
	switch status {
	case StatusOK:
		return "ok"
	case StatusExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// TokenService issues and verifies HS256-signed bearer tokens.
//
// # Shared Secret
//
// The HMAC secret is injected at construction, decoded from a base64 value
// provisioned identically to the identity and task servers. There is no
// process-global crypto state: tests construct independent services with
// independent secrets.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a TokenService from a base64-encoded shared secret.
func NewTokenService(encodedSecret, issuer string, ttl time.Duration) (*TokenService, error) {
	if encodedSecret == "" {
		return nil, errors.New("sec: signing secret is empty")
	}

	secret, err := base64.StdEncoding.DecodeString(encodedSecret)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to decode signing secret: %w", err)
	}

	if ttl <= 0 {
		return nil, fmt.Errorf("sec: token ttl must be positive, got %s", ttl)
	}

	return &TokenService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

/*
GenerateToken creates a signed bearer token for the given user.

The token encodes subject = userID, issuedAt = now, and
expiresAt = now + configured TTL. Tokens are stateless: once issued they
remain valid until natural expiry.

Parameters:
  - userID: string (the subject the token asserts ownership of)

Returns:
  - string: Compact signed JWT
  - error: Signing failures
*/
func (service *TokenService) GenerateToken(userID string) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

/*
VerifyToken checks the signature, structure, and expiry of a token string.

The MAC is verified before any claim is trusted; claims are never read from
a token whose signature does not verify, and tokens signed with anything
other than an HMAC method are rejected outright.

Parameters:
  - tokenString: string

Returns:
  - *AuthClaims: Verified claims
  - error: Malformed token, signature mismatch, unsupported algorithm, or expiry
*/
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}

/*
Inspect classifies a token as ok, expired, or invalid.

Description: Expiry is an expected outcome for long-lived clients, so it is
reported as a status rather than an error. Claims are returned for expired
tokens too — their signature verified — but never for invalid ones.

Parameters:
  - tokenString: string

Returns:
  - *AuthClaims: Claims when the signature verified (ok or expired), else nil
  - TokenStatus: StatusOK, StatusExpired, or StatusInvalid
*/
func (service *TokenService) Inspect(tokenString string) (*AuthClaims, TokenStatus) {
	claims, err := service.VerifyToken(tokenString)
	if err == nil {
		return claims, StatusOK
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		// The signature checked out; only the expiry failed. Re-parse without
		// expiry validation so the caller can still read subject and expiresAt.
		expired, parseErr := service.parseIgnoringExpiry(tokenString)
		if parseErr != nil {
			return nil, StatusInvalid
		}
		return expired, StatusExpired
	}

	return nil, StatusInvalid
}

/*
ValidFor reports whether a token is fully valid AND was issued for the given
subject.

Description: This is the identity service's self-consistency check. The task
service deliberately does not use it — it trusts any structurally valid,
unexpired token regardless of subject, matching its verification contract.

Parameters:
  - tokenString: string
  - userID: string

Returns:
  - bool: true only if signature ok, not expired, and subject == userID
*/
func (service *TokenService) ValidFor(tokenString, userID string) bool {
	claims, status := service.Inspect(tokenString)
	if status != StatusOK {
		return false
	}
	return claims.Subject == userID
}

// parseIgnoringExpiry re-verifies the MAC while skipping expiry validation.
func (service *TokenService) parseIgnoringExpiry(tokenString string) (*AuthClaims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	token, err := parser.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}
