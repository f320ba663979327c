// Package steps implements the workflow step builder: an ordered list of
// prompt references edited in memory and submitted as a whole on save. Every
// mutation keeps Order a contiguous 0..N-1 sequence.
package steps

import "github.com/chazuruo/promptctl/internal/api"

// Builder edits a workflow's step list. The zero value is an empty list.
type Builder struct {
	steps []api.WorkflowStep
}

// FromWorkflow seeds a builder with a workflow's current steps.
func FromWorkflow(w *api.Workflow) *Builder {
	b := &Builder{steps: make([]api.WorkflowStep, len(w.Steps))}
	copy(b.steps, w.Steps)
	b.renumber()
	return b
}

// Steps returns the current list in order.
func (b *Builder) Steps() []api.WorkflowStep {
	return b.steps
}

// Len returns the step count.
func (b *Builder) Len() int {
	return len(b.steps)
}

// Contains reports whether a prompt is already referenced.
func (b *Builder) Contains(promptID string) bool {
	for _, s := range b.steps {
		if s.Prompt == promptID {
			return true
		}
	}
	return false
}

// Add appends a step for the prompt. Set semantics: adding a prompt that is
// already in the list is a no-op.
func (b *Builder) Add(promptID, promptName string) {
	if b.Contains(promptID) {
		return
	}
	b.steps = append(b.steps, api.WorkflowStep{
		Prompt:     promptID,
		PromptName: promptName,
		Order:      len(b.steps),
	})
}

// Remove deletes the step at index and renumbers the rest. Out-of-range
// indices are no-ops.
func (b *Builder) Remove(index int) {
	if index < 0 || index >= len(b.steps) {
		return
	}
	b.steps = append(b.steps[:index], b.steps[index+1:]...)
	b.renumber()
}

// Move swaps the step at index with its neighbor: delta -1 moves it up,
// +1 down. Moves past either end are no-ops.
func (b *Builder) Move(index, delta int) {
	target := index + delta
	if index < 0 || index >= len(b.steps) || target < 0 || target >= len(b.steps) {
		return
	}
	b.steps[index], b.steps[target] = b.steps[target], b.steps[index]
	b.renumber()
}

// SetLabel sets the operator-supplied label of the step at index.
func (b *Builder) SetLabel(index int, label string) {
	if index < 0 || index >= len(b.steps) {
		return
	}
	b.steps[index].Name = label
}

// PickerChoices filters a prompt list down to prompts not yet referenced,
// for the add-step picker.
func (b *Builder) PickerChoices(prompts []api.Prompt) []api.Prompt {
	var out []api.Prompt
	for _, p := range prompts {
		if !b.Contains(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// ApplySnapshot replaces the step list with a history snapshot's steps,
// re-resolving each prompt's display name from the loaded prompt list. A
// prompt no longer present keeps the snapshot's name, or falls back to the
// raw prompt id. Staging only — nothing is written until save.
func (b *Builder) ApplySnapshot(snap api.Snapshot, prompts []api.Prompt) {
	if snap.Steps == nil {
		return
	}
	names := make(map[string]string, len(prompts))
	for _, p := range prompts {
		names[p.ID] = p.Name
	}
	steps := make([]api.WorkflowStep, len(snap.Steps))
	copy(steps, snap.Steps)
	for i := range steps {
		if name, ok := names[steps[i].Prompt]; ok {
			steps[i].PromptName = name
		} else if steps[i].PromptName == "" {
			steps[i].PromptName = steps[i].Prompt
		}
	}
	b.steps = steps
	b.renumber()
}

// Inputs converts the list to the submission form.
func (b *Builder) Inputs() []api.StepInput {
	out := make([]api.StepInput, len(b.steps))
	for i, s := range b.steps {
		out[i] = api.StepInput{Prompt: s.Prompt, Order: s.Order, Name: s.Name}
	}
	return out
}

func (b *Builder) renumber() {
	for i := range b.steps {
		b.steps[i].Order = i
	}
}
