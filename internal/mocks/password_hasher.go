package mocks

import (
	"github.com/stretchr/testify/mock"
)

// PasswordHasher is a testify mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Verify(plaintext, hash string) (bool, error) {
	args := m.Called(plaintext, hash)
	return args.Bool(0), args.Error(1)
}
