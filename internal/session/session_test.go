package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazuruo/promptctl/internal/api"
	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

func TestLoad_MissingSessionIsUnauthorized(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestSaveLoadClear(t *testing.T) {
	dir := t.TempDir()

	st := &State{
		User:         &api.User{ID: "u1", Email: "op@example.com", Name: "Op"},
		Organization: &api.Organization{ID: "org1", Name: "Acme"},
		Cookies:      []Cookie{{Name: "sessionid", Value: "abc"}},
	}
	require.NoError(t, Save(dir, st))

	// Session file is operator-private
	info, err := os.Stat(Path(dir))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "op@example.com", loaded.User.Email)
	assert.Equal(t, "org1", loaded.OrgID())
	require.Len(t, loaded.Cookies, 1)
	assert.Equal(t, "abc", loaded.Cookies[0].Value)
	assert.False(t, loaded.SavedAt.IsZero())

	require.NoError(t, Clear(dir))
	_, err = Load(dir)
	assert.True(t, apperrors.IsUnauthorized(err))

	// Clearing twice is fine
	assert.NoError(t, Clear(dir))
}

func TestEstablish_PersistsFirstOrganization(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s3cr3t", Path: "/"})
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"user":   map[string]string{"id": "u1", "email": "op@example.com", "name": "Op"},
		})
	})
	mux.HandleFunc("GET /api/organizations/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"id": "org1", "name": "First Org"},
			{"id": "org2", "name": "Second Org"},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := api.New(srv.URL, 0)
	require.NoError(t, err)

	dir := t.TempDir()
	st, err := Establish(context.Background(), c, dir, "op@example.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, "org1", st.OrgID(), "first organization wins")
	assert.NotEmpty(t, st.Cookies)

	// Resume seeds a fresh client with the persisted cookies
	fresh, err := api.New(srv.URL, 0)
	require.NoError(t, err)
	resumed, err := Resume(fresh, dir)
	require.NoError(t, err)
	assert.Equal(t, "op@example.com", resumed.User.Email)
	assert.NotEmpty(t, fresh.Cookies())
}

func TestEstablish_NoOrganizations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"user":   map[string]string{"id": "u1", "email": "op@example.com"},
		})
	})
	mux.HandleFunc("GET /api/organizations/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]any{})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := api.New(srv.URL, 0)
	require.NoError(t, err)

	st, err := Establish(context.Background(), c, t.TempDir(), "op@example.com", "pw")
	require.NoError(t, err)
	assert.Nil(t, st.Organization)
	assert.Empty(t, st.OrgID())
}
