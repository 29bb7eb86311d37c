package qa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk_SendsExpectedRequest(t *testing.T) {
	t.Parallel()

	var got askRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ask", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"answer": "The library is in Block C."})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "greenfield")
	answer, err := c.Ask(context.Background(), "Where is the library?")

	require.NoError(t, err)
	assert.Equal(t, "The library is in Block C.", answer)
	assert.Equal(t, "greenfield", got.CollegeID)
	assert.Equal(t, "Where is the library?", got.Query)

	_, parseErr := uuid.Parse(got.SessionID)
	assert.NoError(t, parseErr, "session_id should be a UUID")
}

func TestAsk_SessionStableAcrossTurns(t *testing.T) {
	t.Parallel()

	var sessions []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req askRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		sessions = append(sessions, req.SessionID)
		_ = json.NewEncoder(w).Encode(map[string]string{"answer": "ok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "greenfield")
	for i := 0; i < 3; i++ {
		_, err := c.Ask(context.Background(), "again?")
		require.NoError(t, err)
	}

	require.Len(t, sessions, 3)
	assert.Equal(t, sessions[0], sessions[1])
	assert.Equal(t, sessions[1], sessions[2])
}

func TestResetSession(t *testing.T) {
	t.Parallel()
	c := NewClient("http://localhost", "greenfield")

	before := c.SessionID()
	c.ResetSession()
	assert.NotEqual(t, before, c.SessionID())
}

func TestAsk_MissingAnswerField(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "greenfield")
	answer, err := c.Ask(context.Background(), "hello?")

	require.NoError(t, err)
	assert.Empty(t, answer, "absent answer field decodes to empty, caller substitutes the placeholder")
}

func TestAsk_Non2xxStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := NewClient(srv.URL, "greenfield")
		_, err := c.Ask(context.Background(), "hello?")
		assert.Error(t, err, "status %d should be an error", status)

		srv.Close()
	}
}

func TestAsk_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "greenfield")
	_, err := c.Ask(context.Background(), "hello?")
	assert.Error(t, err)
}

func TestAsk_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before asking

	c := NewClient(srv.URL, "greenfield")
	_, err := c.Ask(context.Background(), "hello?")
	assert.Error(t, err)
}

func TestNewClient_NormalizesBaseURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ask", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"answer": "ok"})
	}))
	defer srv.Close()

	// With and without trailing slash both hit api/ask.
	for _, base := range []string{srv.URL, srv.URL + "/"} {
		c := NewClient(base, "greenfield")
		_, err := c.Ask(context.Background(), "hello?")
		assert.NoError(t, err, "base %q", base)
	}
}
