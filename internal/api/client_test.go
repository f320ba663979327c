package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

// newTestClient returns a client pointed at a httptest server.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, 5*time.Second)
	require.NoError(t, err)
	return c, srv
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := New("/api", 0)
	assert.Error(t, err)

	_, err = New("", 0)
	assert.Error(t, err)
}

func TestClient_SessionCookieRoundTrip(t *testing.T) {
	var sawCookie bool
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "abc123", Path: "/"})
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"user":   map[string]string{"id": "u1", "email": "op@example.com", "name": "Op"},
		})
	})
	mux.HandleFunc("GET /api/users/me/", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("sessionid"); err == nil && c.Value == "abc123" {
			sawCookie = true
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u1", "email": "op@example.com", "name": "Op"})
	})

	c, _ := newTestClient(t, mux)

	user, err := c.Login(context.Background(), "op@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "op@example.com", user.Email)

	_, err = c.Me(context.Background())
	require.NoError(t, err)
	assert.True(t, sawCookie, "session cookie should be replayed on subsequent requests")

	// Cookies survive export/restore into a fresh client
	cookies := c.Cookies()
	require.NotEmpty(t, cookies)

	fresh, err := New(c.baseURL.String(), 0)
	require.NoError(t, err)
	fresh.RestoreCookies(cookies)
	assert.NotEmpty(t, fresh.Cookies())
}

func TestClient_Login_NonSuccessStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "pending"})
	})

	c, _ := newTestClient(t, mux)
	_, err := c.Login(context.Background(), "op@example.com", "secret")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestClient_Login_EmptyCredentialsShortCircuit(t *testing.T) {
	called := false
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := c.Login(context.Background(), "", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalid(err))
	assert.False(t, called, "validation failures must not reach the network")
}

func TestClient_DetailError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Not found."})
	}))

	_, err := c.GetPrompt(context.Background(), "missing")
	require.Error(t, err)

	apiErr, ok := apperrors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "Not found.", apiErr.Detail)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestClient_ErrorKeyError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "User is already in the team"})
	}))

	err := c.AddTeamMember(context.Background(), "t1", "u1", RoleMember)
	require.Error(t, err)

	apiErr, ok := apperrors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "User is already in the team", apiErr.Detail)
	assert.True(t, apperrors.IsInvalid(err))
}

func TestClient_FieldErrors(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":       []string{"This field may not be blank."},
			"visibility": []string{"Invalid choice."},
		})
	}))

	_, err := c.CreateTeam(context.Background(), CreateTeamInput{Organization: "o1"})
	require.Error(t, err)

	apiErr, ok := apperrors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"This field may not be blank."}, apiErr.Fields["name"])
	assert.Equal(t, []string{"Invalid choice."}, apiErr.Fields["visibility"])
}

func TestClient_UnreachableBackend(t *testing.T) {
	c, err := New("http://127.0.0.1:1", 200*time.Millisecond)
	require.NoError(t, err)

	_, err = c.ListOrganizations(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnreachable(err))
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))

	_, err := c.ListOrganizations(context.Background())
	require.Error(t, err)

	apiErr, ok := apperrors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 502, apiErr.Status)
	assert.Empty(t, apiErr.Detail)
}
