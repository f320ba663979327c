// Package tui provides tests for Bubble Tea models.
package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chazuruo/promptctl/internal/api"
)

// recordingSearch records every query the picker actually issues.
type recordingSearch struct {
	mu      sync.Mutex
	queries []string
	results map[string][]api.Prompt
}

func (r *recordingSearch) search(_ context.Context, query string) ([]api.Prompt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, query)
	return r.results[query], nil
}

func typeRune(m PromptPickerModel, r rune) (PromptPickerModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(PromptPickerModel), cmd
}

// TestPickerInitialSearchImmediate verifies the empty query is issued on
// startup without waiting for the debounce window.
func TestPickerInitialSearchImmediate(t *testing.T) {
	rec := &recordingSearch{results: map[string][]api.Prompt{
		"": {{ID: "p1", Name: "Greeting"}},
	}}
	m := NewPromptPickerModel(rec.search, 250*time.Millisecond)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected an init command")
	}
	// run the batch; one of the messages is the search result
	msg := runCmds(cmd)
	found := false
	for _, got := range msg {
		if res, ok := got.(searchResultMsg); ok {
			found = true
			next, _ := m.Update(res)
			m = next.(PromptPickerModel)
		}
	}
	if !found {
		t.Fatal("expected a search result from Init")
	}
	if len(m.Results) != 1 || m.Results[0].ID != "p1" {
		t.Errorf("expected initial results, got %v", m.Results)
	}
}

// TestPickerDebounceDropsStaleTicks verifies that only the tick matching
// the latest keystroke's generation issues a request.
func TestPickerDebounceDropsStaleTicks(t *testing.T) {
	rec := &recordingSearch{results: map[string][]api.Prompt{}}
	m := NewPromptPickerModel(rec.search, 250*time.Millisecond)

	m, _ = typeRune(m, 'a') // generation 1
	m, _ = typeRune(m, 'b') // generation 2

	// the first keystroke's tick arrives: superseded, no request
	next, cmd := m.Update(searchTickMsg{generation: 1})
	m = next.(PromptPickerModel)
	if cmd != nil {
		t.Error("stale tick should not issue a search")
	}

	// the second keystroke's tick arrives: issues the request
	next, cmd = m.Update(searchTickMsg{generation: 2})
	m = next.(PromptPickerModel)
	if cmd == nil {
		t.Fatal("current tick should issue a search")
	}
	runCmds(cmd)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.queries) != 1 || rec.queries[0] != "ab" {
		t.Errorf("expected exactly one search for %q, got %v", "ab", rec.queries)
	}
}

// TestPickerLastRequestWins verifies that a slow completion of an older
// query cannot overwrite the results of a newer one.
func TestPickerLastRequestWins(t *testing.T) {
	rec := &recordingSearch{}
	m := NewPromptPickerModel(rec.search, 250*time.Millisecond)

	m, _ = typeRune(m, 'a') // generation 1
	m, _ = typeRune(m, 'b') // generation 2

	// newer query completes first
	next, _ := m.Update(searchResultMsg{
		generation: 2,
		prompts:    []api.Prompt{{ID: "fresh"}},
	})
	m = next.(PromptPickerModel)

	// older query completes late and must be dropped
	next, _ = m.Update(searchResultMsg{
		generation: 1,
		prompts:    []api.Prompt{{ID: "stale"}},
	})
	m = next.(PromptPickerModel)

	if len(m.Results) != 1 || m.Results[0].ID != "fresh" {
		t.Errorf("expected fresh results to survive, got %v", m.Results)
	}
}

// TestPickerSearchFailureKeepsResults verifies that a failed search keeps
// the previous result list and surfaces the error.
func TestPickerSearchFailureKeepsResults(t *testing.T) {
	rec := &recordingSearch{}
	m := NewPromptPickerModel(rec.search, 250*time.Millisecond)
	m.Results = []api.Prompt{{ID: "p1"}}

	next, _ := m.Update(searchResultMsg{generation: 0, err: fmt.Errorf("boom")})
	m = next.(PromptPickerModel)

	if m.Err == nil {
		t.Error("expected the error to surface")
	}
	if len(m.Results) != 1 {
		t.Errorf("expected prior results kept, got %v", m.Results)
	}
}

// TestPickerExcludesPrompts verifies the exclusion set filters results.
func TestPickerExcludesPrompts(t *testing.T) {
	rec := &recordingSearch{}
	m := NewPromptPickerModel(rec.search, 250*time.Millisecond)
	m.Exclude["used"] = true

	next, _ := m.Update(searchResultMsg{
		generation: 0,
		prompts:    []api.Prompt{{ID: "used"}, {ID: "free"}},
	})
	m = next.(PromptPickerModel)

	if len(m.Results) != 1 || m.Results[0].ID != "free" {
		t.Errorf("expected the used prompt filtered out, got %v", m.Results)
	}
}

// TestPickerConfirmAndQuit verifies enter picks and esc cancels.
func TestPickerConfirmAndQuit(t *testing.T) {
	rec := &recordingSearch{}
	m := NewPromptPickerModel(rec.search, 250*time.Millisecond)
	m.Results = []api.Prompt{{ID: "p1", Name: "Greeting"}}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	picked := next.(PromptPickerModel)
	if !picked.Confirmed || picked.GetPicked() == nil || picked.GetPicked().ID != "p1" {
		t.Errorf("expected p1 picked, got %+v", picked.GetPicked())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	quit := next.(PromptPickerModel)
	if !quit.DidQuit() {
		t.Error("expected quit on esc")
	}
}

// runCmds executes a tea.Cmd tree and collects the produced messages.
func runCmds(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			out = append(out, runCmds(c)...)
		}
		return out
	}
	return append(out, msg)
}
