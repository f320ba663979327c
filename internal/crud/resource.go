// Package crud declares field schemas for the simple editable resources
// (teams, users, categories) and builds huh forms from them, so that each
// entity command shares one create/edit path instead of hand-rolled forms.
package crud

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/chazuruo/promptctl/internal/api"
	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

// FieldKind selects the input widget for a field.
type FieldKind int

const (
	KindText FieldKind = iota
	KindTextArea
	KindSelect
	KindMultiSelect
)

// Option is one choice of a select field.
type Option struct {
	Label string
	Value string
}

// Field describes one editable attribute of a resource.
type Field struct {
	Key         string
	Title       string
	Description string
	Kind        FieldKind
	Required    bool
	Options     []Option
}

// Resource is a named set of fields. The same schema drives create and edit.
type Resource struct {
	Name   string
	Fields []Field
}

// Field returns the schema field with the given key.
func (r Resource) Field(key string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Values holds the form state for one resource instance. Pointers are stable
// so huh widgets can bind to them.
type Values struct {
	strings map[string]*string
	lists   map[string]*[]string
}

// NewValues allocates empty form state for every field of the resource.
func NewValues(res Resource) *Values {
	v := &Values{
		strings: make(map[string]*string),
		lists:   make(map[string]*[]string),
	}
	for _, f := range res.Fields {
		if f.Kind == KindMultiSelect {
			v.lists[f.Key] = new([]string)
		} else {
			v.strings[f.Key] = new(string)
		}
	}
	return v
}

// Set assigns a scalar field. Unknown keys are ignored.
func (v *Values) Set(key, val string) {
	if p, ok := v.strings[key]; ok {
		*p = val
	}
}

// Get reads a scalar field.
func (v *Values) Get(key string) string {
	if p, ok := v.strings[key]; ok {
		return *p
	}
	return ""
}

// SetList assigns a multi-select field.
func (v *Values) SetList(key string, vals []string) {
	if p, ok := v.lists[key]; ok {
		*p = vals
	}
}

// GetList reads a multi-select field.
func (v *Values) GetList(key string) []string {
	if p, ok := v.lists[key]; ok {
		return *p
	}
	return nil
}

// Validate checks required fields, returning the first violation.
func (v *Values) Validate(res Resource) error {
	for _, f := range res.Fields {
		if !f.Required {
			continue
		}
		if f.Kind == KindMultiSelect {
			if len(v.GetList(f.Key)) == 0 {
				return apperrors.Invalid(f.Key, fmt.Sprintf("%s requires at least one selection", f.Title))
			}
			continue
		}
		if strings.TrimSpace(v.Get(f.Key)) == "" {
			return apperrors.Invalid(f.Key, fmt.Sprintf("%s is required", f.Title))
		}
	}
	return nil
}

// Payload flattens the values into the request body map used by the
// map-style update endpoints. Empty optional scalars are omitted.
func (v *Values) Payload(res Resource) map[string]any {
	out := make(map[string]any)
	for _, f := range res.Fields {
		if f.Kind == KindMultiSelect {
			out[f.Key] = v.GetList(f.Key)
			continue
		}
		val := v.Get(f.Key)
		if val == "" && !f.Required {
			continue
		}
		out[f.Key] = val
	}
	return out
}

// BuildForm constructs a single-group huh form over the resource's fields,
// bound to the values.
func BuildForm(res Resource, v *Values) *huh.Form {
	fields := make([]huh.Field, 0, len(res.Fields))
	for _, f := range res.Fields {
		switch f.Kind {
		case KindTextArea:
			fields = append(fields, huh.NewText().
				Title(f.Title).
				Description(f.Description).
				Value(v.strings[f.Key]))
		case KindSelect:
			opts := make([]huh.Option[string], len(f.Options))
			for i, o := range f.Options {
				opts[i] = huh.NewOption(o.Label, o.Value)
			}
			fields = append(fields, huh.NewSelect[string]().
				Title(f.Title).
				Description(f.Description).
				Options(opts...).
				Value(v.strings[f.Key]))
		case KindMultiSelect:
			opts := make([]huh.Option[string], len(f.Options))
			for i, o := range f.Options {
				opts[i] = huh.NewOption(o.Label, o.Value)
			}
			fields = append(fields, huh.NewMultiSelect[string]().
				Title(f.Title).
				Description(f.Description).
				Options(opts...).
				Value(v.lists[f.Key]))
		default:
			fields = append(fields, huh.NewInput().
				Title(f.Title).
				Description(f.Description).
				Value(v.strings[f.Key]))
		}
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

func roleOptions() []Option {
	return []Option{
		{Label: "Owner", Value: string(api.RoleOwner)},
		{Label: "Member", Value: string(api.RoleMember)},
		{Label: "Viewer", Value: string(api.RoleViewer)},
	}
}

// TeamResource is the schema behind team create/edit.
func TeamResource() Resource {
	return Resource{
		Name: "team",
		Fields: []Field{
			{Key: "name", Title: "Name", Required: true},
			{Key: "description", Title: "Description", Kind: KindTextArea},
		},
	}
}

// CategoryResource is the schema behind category create/edit.
func CategoryResource() Resource {
	return Resource{
		Name: "category",
		Fields: []Field{
			{Key: "name", Title: "Name", Required: true},
			{Key: "description", Title: "Description", Kind: KindTextArea},
		},
	}
}

// UserResource is the schema behind user create. Team choices come from the
// caller's loaded team list; selected teams are assigned after creation.
func UserResource(teams []api.Team) Resource {
	teamOpts := make([]Option, len(teams))
	for i, t := range teams {
		teamOpts[i] = Option{Label: t.Name, Value: t.ID}
	}
	return Resource{
		Name: "user",
		Fields: []Field{
			{Key: "name", Title: "Name", Required: true},
			{Key: "email", Title: "Email", Required: true},
			{Key: "team_ids", Title: "Teams", Kind: KindMultiSelect, Options: teamOpts},
		},
	}
}

// MemberResource is the schema for adding a member to a team or organization.
func MemberResource() Resource {
	return Resource{
		Name: "member",
		Fields: []Field{
			{Key: "email", Title: "Email", Description: "Email of an existing user", Required: true},
			{Key: "role", Title: "Role", Kind: KindSelect, Required: true, Options: roleOptions()},
		},
	}
}
