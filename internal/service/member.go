package service

import (
	"context"
	"fmt"

	"github.com/rosterlab/memberd/internal/authz"
	"github.com/rosterlab/memberd/internal/logger"
	"github.com/rosterlab/memberd/internal/model"
)

// Member serves member rows gated by the row-level policy engine. Rows the
// caller may not access are reported as absent, never as forbidden, so
// existence does not leak through error asymmetry.
type Member struct {
	memberStore model.MemberStore
	policy      *authz.Engine
	logger      *logger.Logger
}

func NewMember(memberStore model.MemberStore, policy *authz.Engine, logger *logger.Logger) *Member {
	return &Member{
		memberStore: memberStore,
		policy:      policy,
		logger:      logger,
	}
}

// Get returns the member row with the given id if the caller may read it.
func (s *Member) Get(ctx context.Context, caller model.Identity, id int64) (model.Member, error) {
	if !s.policy.CanAccess(caller, authz.OpRead, id) {
		return model.Member{}, model.ErrNotFound
	}

	member, err := s.memberStore.GetByID(ctx, id)
	if err != nil {
		return model.Member{}, fmt.Errorf("failed to get member by id: %w", err)
	}

	return member, nil
}

// List returns the member rows visible to the caller: all rows for admins,
// only the caller's own row for members.
func (s *Member) List(ctx context.Context, caller model.Identity) ([]model.Member, error) {
	scope, ok := s.policy.Scope(caller)
	if !ok {
		return nil, nil
	}

	members, err := s.memberStore.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return members, nil
}

// UpdateProfile updates the display fields of a member row the caller may
// write: their own row, or any row for admins.
func (s *Member) UpdateProfile(ctx context.Context, caller model.Identity, id int64, firstName, lastName string) (model.Member, error) {
	if !s.policy.CanAccess(caller, authz.OpUpdate, id) {
		return model.Member{}, model.ErrNotFound
	}

	if firstName == "" || lastName == "" {
		return model.Member{}, model.ErrInvalidInput
	}

	member, err := s.memberStore.UpdateProfile(ctx, id, firstName, lastName)
	if err != nil {
		return model.Member{}, fmt.Errorf("failed to update member profile: %w", err)
	}

	s.logger.Info("Member service: profile updated",
		"member_id", id,
		"caller_id", caller.MemberID,
		"caller_role", string(caller.Role))

	return member, nil
}
