package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/api/shared"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/stretchr/testify/require"
)

// envelope is the decoded response body.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewReader([]byte(s))
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// serve routes a single request through a chi router so path parameters
// resolve. A non-nil userID is attached as the authenticated user.
func serve(
	t *testing.T,
	method, pattern, target string,
	body interface{},
	userID uuid.UUID,
	h http.HandlerFunc,
) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, jsonBody(t, body))
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != uuid.Nil {
		req = req.WithContext(shared.WithUser(req.Context(), userID, domain.RoleUser))
	}

	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}
