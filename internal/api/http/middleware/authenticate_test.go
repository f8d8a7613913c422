package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/rosterlab/memberd/internal/api/http/context"
	"github.com/rosterlab/memberd/internal/mocks"
	"github.com/rosterlab/memberd/internal/model"
	"github.com/rosterlab/memberd/internal/testutil"
)

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		authHeader   string
		identity     model.Identity
		verifyErr    error
		wantStatus   int
		wantIdentity bool
	}{
		{
			name:       "missing authorization header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid",
			verifyErr:  model.ErrInvalidToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:         "valid token",
			authHeader:   "Bearer token",
			identity:     model.Identity{MemberID: 1, Role: model.RoleMember},
			wantStatus:   http.StatusOK,
			wantIdentity: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &mocks.TokenManager{}
			if tt.authHeader != "" {
				verifier.On("Verify", "token").Return(tt.identity, tt.verifyErr).Maybe()
				verifier.On("Verify", "invalid").Return(model.Anonymous(), tt.verifyErr).Maybe()
			}
			ctxMgr := httpctx.NewManager()
			m := NewAuthenticate(verifier, ctxMgr, testutil.MakeNoopLogger())

			var gotIdentity model.Identity
			var identitySet bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotIdentity, identitySet = ctxMgr.GetIdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			m.Handle(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantIdentity {
				require.True(t, identitySet)
				assert.Equal(t, tt.identity, gotIdentity)
			}
		})
	}
}

func TestAuthenticate_Handle_SameResponseForAllFailures(t *testing.T) {
	verifier := &mocks.TokenManager{}
	verifier.On("Verify", "expired").Return(model.Anonymous(), model.ErrInvalidToken)
	verifier.On("Verify", "forged").Return(model.Anonymous(), model.ErrInvalidToken)

	m := NewAuthenticate(verifier, httpctx.NewManager(), testutil.MakeNoopLogger())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	bodies := make([]string, 0, 2)
	for _, tokenString := range []string{"expired", "forged"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		rec := httptest.NewRecorder()
		m.Handle(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}

	assert.Equal(t, bodies[0], bodies[1])
}
