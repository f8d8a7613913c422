package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/rosterlab/memberd/internal/model"
)

// TokenManager is a testify mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) Issue(memberID int64, role model.Role) (string, error) {
	args := m.Called(memberID, role)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Verify(token string) (model.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(model.Identity), args.Error(1)
}
