package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rosterlab/memberd/internal/model"
)

// MemberStore is a testify mock of model.MemberStore.
type MemberStore struct {
	mock.Mock
}

func (m *MemberStore) Create(ctx context.Context, member model.Member) (model.Member, error) {
	args := m.Called(ctx, member)
	return args.Get(0).(model.Member), args.Error(1)
}

func (m *MemberStore) GetByEmail(ctx context.Context, email string) (model.Member, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Member), args.Error(1)
}

func (m *MemberStore) GetByID(ctx context.Context, id int64) (model.Member, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Member), args.Error(1)
}

func (m *MemberStore) UpdateProfile(ctx context.Context, id int64, firstName, lastName string) (model.Member, error) {
	args := m.Called(ctx, id, firstName, lastName)
	return args.Get(0).(model.Member), args.Error(1)
}

func (m *MemberStore) List(ctx context.Context, scope model.AccessScope) ([]model.Member, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}
