package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rosterlab/memberd/internal/logger"
	"github.com/rosterlab/memberd/internal/model"
)

// TokenVerifier resolves an acting identity from a bearer token.
type TokenVerifier interface {
	Verify(token string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the verified identity
// into the request context. Requests without a valid capability never reach
// the guarded handlers.
type Authenticate struct {
	verifier       TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier TokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, verifies the capability and
// passes the request on with the identity in context. Missing, malformed,
// tampered and expired tokens all get the same 401 response.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			m.unauthorized(w)
			return
		}

		identity, err := m.verifier.Verify(tokenString)
		if err != nil {
			m.logger.Debug("Authenticate middleware: capability rejected",
				"path", r.URL.Path)
			m.unauthorized(w)
			return
		}

		ctx := m.contextManager.SetIdentityToContext(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": model.ErrInvalidToken.Error()})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
