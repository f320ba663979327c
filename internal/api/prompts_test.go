package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptFilter_Values(t *testing.T) {
	f := PromptFilter{
		OrganizationID: "org1",
		Visibility:     VisibilityPublic,
		FolderID:       RootFolder,
		Search:         "deploy",
		Ordering:       "name",
		Page:           2,
		PageSize:       10,
	}

	q := f.values()
	assert.Equal(t, "org1", q.Get("organization_id"))
	assert.Equal(t, "PUBLIC", q.Get("visibility"))
	assert.Equal(t, "root", q.Get("folder_id"))
	assert.Equal(t, "deploy", q.Get("search"))
	assert.Equal(t, "name", q.Get("ordering"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "10", q.Get("page_size"))
	assert.Empty(t, q.Get("created_by"))

	mine := PromptFilter{CreatedByMe: true}
	assert.Equal(t, "me", mine.values().Get("created_by"))
}

func TestFolderFilter_RootOnlyOverridesParent(t *testing.T) {
	f := FolderFilter{OrganizationID: "org1", Type: FolderPublic, ParentID: "f9", RootOnly: true}
	q := f.values()
	assert.Equal(t, "true", q.Get("root_only"))
	assert.Empty(t, q.Get("parent_id"), "root_only listings must not carry parent_id")

	child := FolderFilter{ParentID: "f9"}
	assert.Equal(t, "f9", child.values().Get("parent_id"))
}

func TestListPrompts_PassesQuery(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count":   1,
			"results": []map[string]string{{"id": "p1", "name": "greet"}},
		})
	}))

	page, err := c.ListPrompts(context.Background(), PromptFilter{OrganizationID: "org1", FolderID: "root"})
	require.NoError(t, err)
	assert.Equal(t, "org1", gotQuery.Get("organization_id"))
	assert.Equal(t, "root", gotQuery.Get("folder_id"))
	require.Len(t, page.Results, 1)
	assert.Equal(t, "greet", page.Results[0].Name)
}

func TestRevertPrompt_SendsHistoryIDAndReturnsServerState(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		// The backend returns the fully reconstructed prompt, which may
		// differ from any snapshot the caller displayed.
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         "p1",
			"name":       "reconstructed name",
			"prompt":     "reconstructed body",
			"model":      "gpt-4",
			"visibility": "PRIVATE",
		})
	}))

	p, err := c.RevertPrompt(context.Background(), "p1", "h42")
	require.NoError(t, err)

	assert.Equal(t, "/api/prompts/p1/revert/", gotPath)
	assert.Equal(t, map[string]string{"history_id": "h42"}, gotBody)
	assert.Equal(t, "reconstructed name", p.Name)
	assert.Equal(t, "reconstructed body", p.Prompt)
}

func TestPromptHistory_Paginated(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count": 12,
			"results": []map[string]any{
				{"id": "h1", "change_summary": "edited prompt text"},
			},
		})
	}))

	page, err := c.PromptHistory(context.Background(), "p1", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages(10))
	require.Len(t, page.Results, 1)
	assert.Equal(t, "edited prompt text", page.Results[0].ChangeSummary)
}

func TestWorkflowHistory_BareArrayIsOnePage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "h1", "change_summary": "created"},
			{"id": "h2", "change_summary": "renamed"},
		})
	}))

	page, err := c.WorkflowHistory(context.Background(), "w1", 1, 10)
	require.NoError(t, err)
	assert.False(t, page.Paginated)
	assert.Equal(t, 1, page.TotalPages(10))
	assert.Len(t, page.Results, 2)
}

func TestMoveFolder_NullParentMeansRoot(t *testing.T) {
	var raw map[string]json.RawMessage
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, c.MoveFolder(context.Background(), "f1", nil))
	parent, ok := raw["parent"]
	require.True(t, ok, "parent key must be present even when null")
	assert.Equal(t, "null", string(parent))
}
