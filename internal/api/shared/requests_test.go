package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Title string `json:"title"`
	}

	t.Run("decodes a valid body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Buy groceries"}`))
		var p payload
		require.NoError(t, DecodeJSON(req, &p))
		assert.Equal(t, "Buy groceries", p.Title)
	})

	t.Run("empty body returns ErrEmptyBody", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(""))
		var p payload
		assert.ErrorIs(t, DecodeJSON(req, &p), ErrEmptyBody)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"x","bogus":1}`))
		var p payload
		err := DecodeJSON(req, &p)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmptyBody)
	})

	t.Run("malformed JSON is rejected", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":`))
		var p payload
		assert.Error(t, DecodeJSON(req, &p))
	})
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/tasks", nil)
	recorder := httptest.NewRecorder()

	RespondWithError(recorder, req, http.StatusForbidden, "Permission denied")

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "Permission denied", body["message"])
	_, hasCode := body["code"]
	assert.False(t, hasCode, "numeric code must not leak into the body")
}

func TestIdentityContextRoundTrip(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/", nil)

	_, ok := IdentityFromContext(req.Context())
	assert.False(t, ok)

	identity := Identity{UserID: uuid.New()}
	ctx := WithIdentity(req.Context(), identity)
	got, ok := IdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, identity, got)
}

func TestTraceIDGeneration(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(httptest.NewRequest("GET", "/", nil).Context())
	first := GetTraceID(ctx)
	assert.NotEmpty(t, first)

	second := GetTraceID(SetTraceID(httptest.NewRequest("GET", "/", nil).Context()))
	assert.NotEqual(t, first, second, "trace IDs should be unique per request")
}
