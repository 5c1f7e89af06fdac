package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	validClaims := &auth.Claims{UserID: userID, Role: domain.RoleAdmin}

	tests := []struct {
		name         string
		authHeader   string
		validateErr  error
		claims       *auth.Claims
		wantStatus   int
		wantIdentity bool
	}{
		{
			name:         "valid token",
			authHeader:   "Bearer valid-token",
			claims:       validClaims,
			wantStatus:   http.StatusOK,
			wantIdentity: true,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing token after scheme",
			authHeader: "Bearer",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "expired token",
			authHeader:  "Bearer expired-token",
			validateErr: auth.ErrExpiredToken,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "invalid token",
			authHeader:  "Bearer garbage",
			validateErr: auth.ErrInvalidToken,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "unexpected validation failure",
			authHeader:  "Bearer valid-token",
			validateErr: assert.AnError,
			wantStatus:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{
				Claims:      tt.claims,
				ValidateErr: tt.validateErr,
			}
			middleware := NewAuthMiddleware(jwtService)

			var gotIdentity shared.Identity
			var handlerCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				identity, ok := shared.IdentityFromContext(r.Context())
				require.True(t, ok, "identity should be in context")
				gotIdentity = identity
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			middleware.Authenticate(next).ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantIdentity, handlerCalled)
			if tt.wantIdentity {
				assert.Equal(t, userID, gotIdentity.UserID)
				assert.Equal(t, domain.RoleAdmin, gotIdentity.Role)
			}
		})
	}
}

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	var gotTraceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTraceID = shared.GetTraceID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/healthz", nil)
	recorder := httptest.NewRecorder()

	TraceMiddleware(next).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, gotTraceID, "trace ID should be set for downstream handlers")
}
