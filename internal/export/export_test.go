package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazuruo/promptctl/internal/api"
	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Customer Greeting", "customer-greeting"},
		{"Fix: Bug #123!", "fix-bug-123"},
		{"  spaced  out  ", "spaced-out"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestSlugifyTruncatesAtWordBoundary(t *testing.T) {
	long := "a very long prompt name that keeps going well past the cutoff point"
	slug := Slugify(long)
	assert.LessOrEqual(t, len(slug), 50)
	assert.False(t, slug[len(slug)-1] == '-')
}

func TestWriteAndReadPrompt(t *testing.T) {
	dir := t.TempDir()
	e := New(dir)

	p := &api.Prompt{
		Name:        "Customer Greeting",
		Description: "opening line",
		Prompt:      "Hello {{name}}, welcome back.",
		Model:       "gpt-4",
		Visibility:  api.VisibilityTeam,
		Categories:  []api.PromptCategory{{Category: "c1", CategoryName: "Support"}},
	}
	path, err := e.WritePrompt(p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "customer-greeting.yaml"), path)

	in, err := ReadPrompt(path)
	require.NoError(t, err)
	assert.Equal(t, "Customer Greeting", in.Name)
	assert.Equal(t, "Hello {{name}}, welcome back.", in.Prompt)
	assert.Equal(t, api.VisibilityTeam, in.Visibility)
}

func TestReadPromptDefaultsVisibility(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: prompt\nname: Bare\nprompt: hi\n"), 0o644))

	in, err := ReadPrompt(path)
	require.NoError(t, err)
	assert.Equal(t, api.VisibilityPrivate, in.Visibility)
}

func TestReadPromptRejectsBadVisibility(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: prompt\nname: Bad\nvisibility: LOUD\n"), 0o644))

	_, err := ReadPrompt(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalid(err))
}

func TestReadPromptRejectsWrongKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: workflow\nname: Not A Prompt\n"), 0o644))

	_, err := ReadPrompt(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalid(err))
}

func TestWriteAndReadWorkflow(t *testing.T) {
	dir := t.TempDir()
	e := New(dir)

	w := &api.Workflow{
		Name:       "Onboarding Flow",
		Visibility: api.VisibilityPublic,
		Steps: []api.WorkflowStep{
			{Prompt: "p1", PromptName: "Greeting", Order: 0, Name: "open"},
			{Prompt: "p2", Order: 1}, // unresolved name falls back to the id
		},
	}
	path, err := e.WriteWorkflow(w)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "onboarding-flow.yaml"), path)

	doc, err := ReadWorkflow(path)
	require.NoError(t, err)
	assert.Equal(t, "Onboarding Flow", doc.Name)
	require.Len(t, doc.Steps, 2)
	assert.Equal(t, "Greeting", doc.Steps[0].PromptName)
	assert.Equal(t, "open", doc.Steps[0].Name)
	assert.Equal(t, "p2", doc.Steps[1].PromptName)
}

func TestWriteCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	e := New(dir)

	_, err := e.WritePrompt(&api.Prompt{Name: "X", Visibility: api.VisibilityPrivate})
	require.NoError(t, err)
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}
