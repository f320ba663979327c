// Package export writes prompts and workflows to YAML files and reads them
// back as create payloads, for backup and cross-organization copying.
// Filenames are slugs derived from the entity name.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/chazuruo/promptctl/internal/api"
	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

var (
	slugRegex        = regexp.MustCompile(`[^a-z0-9]+`)
	multiHyphenRegex = regexp.MustCompile(`-+`)
)

// Slugify converts an entity name into a filesystem-friendly slug:
// lowercase, a-z/0-9/hyphen only, collapsed hyphens, max 50 chars cut at a
// word boundary.
func Slugify(name string) string {
	if name == "" {
		return ""
	}
	caser := cases.Title(language.English)
	result := strings.ToLower(caser.String(strings.TrimSpace(name)))
	result = slugRegex.ReplaceAllString(result, "-")
	result = multiHyphenRegex.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > 50 {
		cutoff := 50
		if idx := strings.LastIndex(result[:cutoff], "-"); idx > 0 {
			cutoff = idx
		}
		result = result[:cutoff]
	}
	return result
}

// PromptDoc is the exported form of a prompt. Identity and audit fields are
// deliberately dropped: an import always creates a new prompt.
type PromptDoc struct {
	Kind        string   `yaml:"kind"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Prompt      string   `yaml:"prompt"`
	Model       string   `yaml:"model"`
	Visibility  string   `yaml:"visibility"`
	Categories  []string `yaml:"categories,omitempty"`
}

// StepDoc is one step of an exported workflow, referenced by prompt name so
// the file stays portable across organizations.
type StepDoc struct {
	PromptName string `yaml:"prompt_name"`
	Name       string `yaml:"name,omitempty"`
}

// WorkflowDoc is the exported form of a workflow.
type WorkflowDoc struct {
	Kind        string    `yaml:"kind"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Visibility  string    `yaml:"visibility"`
	Steps       []StepDoc `yaml:"steps"`
}

const (
	kindPrompt   = "prompt"
	kindWorkflow = "workflow"
)

// Exporter writes documents under a directory, creating it on first use.
type Exporter struct {
	dir string
}

func New(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// WritePrompt exports one prompt and returns the written path.
func (e *Exporter) WritePrompt(p *api.Prompt) (string, error) {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.CategoryName)
	}
	doc := PromptDoc{
		Kind:        kindPrompt,
		Name:        p.Name,
		Description: p.Description,
		Prompt:      p.Prompt,
		Model:       p.Model,
		Visibility:  string(p.Visibility),
		Categories:  names,
	}
	return e.write(doc, p.Name, kindPrompt)
}

// WriteWorkflow exports one workflow and returns the written path.
func (e *Exporter) WriteWorkflow(w *api.Workflow) (string, error) {
	steps := make([]StepDoc, len(w.Steps))
	for i, s := range w.Steps {
		name := s.PromptName
		if name == "" {
			name = s.Prompt
		}
		steps[i] = StepDoc{PromptName: name, Name: s.Name}
	}
	doc := WorkflowDoc{
		Kind:        kindWorkflow,
		Name:        w.Name,
		Description: w.Description,
		Visibility:  string(w.Visibility),
		Steps:       steps,
	}
	return e.write(doc, w.Name, kindWorkflow)
}

func (e *Exporter) write(doc any, name, kind string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	slug := Slugify(name)
	if slug == "" {
		slug = kind
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", kind, err)
	}
	path := filepath.Join(e.dir, slug+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ReadPrompt parses an exported prompt file into a create payload. The
// organization and folder are supplied by the caller at import time.
func ReadPrompt(path string) (*api.PromptInput, error) {
	var doc PromptDoc
	if err := readDoc(path, kindPrompt, &doc); err != nil {
		return nil, err
	}
	if doc.Name == "" {
		return nil, apperrors.Invalid("name", "exported prompt has no name")
	}
	vis := api.Visibility(doc.Visibility)
	if vis == "" {
		vis = api.VisibilityPrivate
	}
	if !vis.Valid() {
		return nil, apperrors.Invalid("visibility", fmt.Sprintf("unknown visibility %q", doc.Visibility))
	}
	return &api.PromptInput{
		Name:        doc.Name,
		Description: doc.Description,
		Prompt:      doc.Prompt,
		Model:       doc.Model,
		Visibility:  vis,
	}, nil
}

// ReadWorkflow parses an exported workflow file. Step prompt names are
// returned as-is; the caller resolves them against the target organization's
// prompts before submitting.
func ReadWorkflow(path string) (*WorkflowDoc, error) {
	var doc WorkflowDoc
	if err := readDoc(path, kindWorkflow, &doc); err != nil {
		return nil, err
	}
	if doc.Name == "" {
		return nil, apperrors.Invalid("name", "exported workflow has no name")
	}
	return &doc, nil
}

func readDoc(path, wantKind string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	kind := ""
	switch d := out.(type) {
	case *PromptDoc:
		kind = d.Kind
	case *WorkflowDoc:
		kind = d.Kind
	}
	if kind != wantKind {
		return apperrors.Invalid("kind", fmt.Sprintf("%s: expected kind %q, got %q", path, wantKind, kind))
	}
	return nil
}
