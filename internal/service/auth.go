package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rosterlab/memberd/internal/logger"
	"github.com/rosterlab/memberd/internal/model"
)

// RegisterParams carries the caller-supplied registration fields.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Auth implements the registration and authentication flows. Both end in
// the capability issuer minting a signed token; neither exposes whether an
// email exists beyond the explicit duplicate-email registration error.
type Auth struct {
	memberStore model.MemberStore
	hasher      model.PasswordHasher
	tokens      model.TokenManager
	logger      *logger.Logger
}

func NewAuth(
	memberStore model.MemberStore,
	hasher model.PasswordHasher,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		memberStore: memberStore,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
	}
}

// Register validates input, hashes the password, persists the member and
// issues a capability with role member. The plaintext password is discarded
// after hashing. Missing fields fail with ErrInvalidInput before any storage
// access; a taken email fails with ErrDuplicateEmail and writes nothing.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.Session, error) {
	a.logger.Debug("Auth service: starting member registration",
		"email", params.Email)

	if err := validateRegisterParams(params); err != nil {
		return model.Session{}, err
	}

	// Pre-check for a friendlier failure. The insert below is still guarded
	// by the unique constraint, which is what decides concurrent races.
	_, err := a.memberStore.GetByEmail(ctx, params.Email)
	if err == nil {
		a.logger.Info("Auth service: email already registered",
			"email", params.Email)
		return model.Session{}, model.ErrDuplicateEmail
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get member by email",
			"email", params.Email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get member by email: %w", err)
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", params.Email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	member, err := a.memberStore.Create(ctx, model.Member{
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		PasswordHash: hash,
		IsAdmin:      false,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.Session{}, model.ErrDuplicateEmail
		}
		a.logger.Error("Auth service: failed to create member",
			"email", params.Email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to create member: %w", err)
	}

	tokenString, err := a.tokens.Issue(member.ID, model.RoleMember)
	if err != nil {
		a.logger.Error("Auth service: failed to issue capability",
			"member_id", member.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to issue capability: %w", err)
	}

	a.logger.Info("Auth service: member registration completed",
		"member_id", member.ID)

	return model.Session{Token: tokenString, MemberID: member.ID, Role: model.RoleMember}, nil
}

// Login verifies the claimed identity and issues a capability whose role
// reflects the admin flag at this moment; later flag changes take effect
// only on the next login. Unknown email and wrong password return the same
// ErrAuthenticationFailed.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Session, error) {
	a.logger.Debug("Auth service: starting member login",
		"email", email)

	member, err := a.memberStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Session{}, model.ErrAuthenticationFailed
		}
		a.logger.Error("Auth service: failed to get member by email",
			"email", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get member by email: %w", err)
	}

	ok, err := a.hasher.Verify(password, member.PasswordHash)
	if err != nil {
		// A hash that fails to parse is corrupted stored data, not a wrong
		// password. It must surface as an internal error.
		a.logger.Error("Auth service: stored password hash rejected",
			"member_id", member.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return model.Session{}, model.ErrAuthenticationFailed
	}

	role := model.RoleMember
	if member.IsAdmin {
		role = model.RoleAdmin
	}

	tokenString, err := a.tokens.Issue(member.ID, role)
	if err != nil {
		a.logger.Error("Auth service: failed to issue capability",
			"member_id", member.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to issue capability: %w", err)
	}

	a.logger.Info("Auth service: member login completed",
		"member_id", member.ID,
		"role", string(role))

	return model.Session{Token: tokenString, MemberID: member.ID, Role: role}, nil
}

func validateRegisterParams(params RegisterParams) error {
	if strings.TrimSpace(params.FirstName) == "" ||
		strings.TrimSpace(params.LastName) == "" ||
		strings.TrimSpace(params.Email) == "" ||
		params.Password == "" {
		return model.ErrInvalidInput
	}
	if !strings.Contains(params.Email, "@") {
		return model.ErrInvalidInput
	}
	return nil
}
