// Copyright (c) 2026 Taskforge. All rights reserved.

package identity

import (
	"context"
	"fmt"

	"github.com/taskforge/taskforge/internal/platform/apperr"
	"github.com/taskforge/taskforge/internal/platform/constants"
	"github.com/taskforge/taskforge/internal/platform/sec"
	"github.com/taskforge/taskforge/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing bearer tokens.
type TokenProvider interface {
	// GenerateToken creates a signed JWT asserting ownership of userID.
	//
	// # Returns
	//   - A compact signed token string, or an err if signing fails.
	GenerateToken(userID string) (string, error)
}

// Service implements the identity use cases: registration, login, and lookup.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, throttling,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository     UserRepository
	throttleRepository ThrottleRepository
	tokenProvider      TokenProvider
}

// NewService constructs a new identity [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	throttleRepo ThrottleRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:     userRepo,
		throttleRepository: throttleRepo,
		tokenProvider:      tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Email shape and password policy are enforced BEFORE any storage
access; the plain-text password is discarded the moment the hash exists.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Validation, Conflict (if the email is taken), or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Normalize and validate the address. Rejections carry a field-level detail.
	email, err := ParseEmail(input.Email)
	if err != nil {
		return nil, err
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	exists, err := service.userRepository.ExistsByEmail(context, email)
	if err != nil {
		return nil, fmt.Errorf("identity_service_uniqueness_check_failed: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Enforce the password policy before touching bcrypt.
	if err := sec.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("identity_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := NewUser(email, hashedPassword)

	// Persist the user to the database. A concurrent duplicate registration
	// surfaces here as a Conflict from the unique index.
	if err := service.userRepository.Create(context, user); err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "CONFLICT" {
			return nil, apperr.Conflict("Email is already registered")
		}
		return nil, fmt.Errorf("identity_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
}

// LoginResult represents a successfully authenticated user and their token.
type LoginResult struct {
	AccessToken string
	User        *User
}

/*
Login validates user credentials and issues a bearer token.

Description: Unknown email and wrong password produce the IDENTICAL error, so
a caller cannot probe which addresses are registered. Failed attempts count
against a per-IP throttle; once the window limit is reached, further attempts
from that IP are refused outright until the counter expires.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Access token and the authenticated user
  - err: Unauthorized, RateLimited, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {

	// Refuse early when this IP has exhausted its failure budget. Throttle
	// reads are best-effort: a dead Redis must not lock everyone out.
	failures, err := service.throttleRepository.Failures(context, input.IPAddress)
	if err == nil && failures >= constants.LoginThrottleMaxFailures {
		return nil, apperr.RateLimited(int(constants.LoginThrottleWindow.Seconds()))
	}

	email, err := ParseEmail(input.Email)
	if err != nil {
		// A malformed address can never match an account. Same generic message.
		return nil, service.failedAttempt(context, input.IPAddress)
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		// Generic message regardless of whether the account exists, to
		// prevent enumeration. Storage faults still surface as internal.
		if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
			return nil, service.failedAttempt(context, input.IPAddress)
		}
		return nil, fmt.Errorf("identity_service_login_lookup_failed: %w", err)
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !user.VerifyPassword(input.Password) {
		return nil, service.failedAttempt(context, input.IPAddress)
	}

	// Successful login clears the IP's failure counter. Best-effort.
	_ = service.throttleRepository.Reset(context, input.IPAddress)

	accessToken, err := service.tokenProvider.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("identity_service_token_generation_failed: %w", err)
	}

	return &LoginResult{
		AccessToken: accessToken,
		User:        user,
	}, nil
}

// failedAttempt records a login failure for the IP and returns the uniform
// credential error, escalating to 429 when the attempt crosses the limit.
func (service *Service) failedAttempt(context context.Context, ip string) error {
	count, err := service.throttleRepository.RecordFailure(context, ip)
	if err == nil && count >= constants.LoginThrottleMaxFailures {
		return apperr.RateLimited(int(constants.LoginThrottleWindow.Seconds()))
	}
	return apperr.Unauthorized("Invalid credentials")
}

// # User Lookup

/*
GetUserByID returns the account with the given ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated entity
  - err: NotFound or storage failures
*/
func (service *Service) GetUserByID(context context.Context, id string) (*User, error) {
	// An ID that is not even UUID-shaped can never match a row; short-circuit
	// with the same NotFound the storage layer would produce.
	if !uuid.IsValid(id) {
		return nil, apperr.NotFound("User")
	}

	user, err := service.userRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	return user, nil
}

/*
GetUserByEmail returns the account with the given email address.

Parameters:
  - context: context.Context
  - rawEmail: string

Returns:
  - *User: Hydrated entity
  - err: NotFound or storage failures
*/
func (service *Service) GetUserByEmail(context context.Context, rawEmail string) (*User, error) {
	// A malformed address can never match a row; report NotFound rather than
	// a validation error, since the address arrives as a path parameter.
	email, err := ParseEmail(rawEmail)
	if err != nil {
		return nil, apperr.NotFound("User")
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return nil, err
	}

	return user, nil
}
