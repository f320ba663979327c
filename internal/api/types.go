// Package api provides the promptbox REST client used by every command.
package api

import (
	"time"

	"github.com/google/uuid"
)

// Visibility is the access scope of a prompt or workflow.
type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityTeam    Visibility = "TEAM"
	VisibilityPublic  Visibility = "PUBLIC"
)

// Valid reports whether v is one of the known visibility values.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityTeam, VisibilityPublic:
		return true
	}
	return false
}

// FolderType partitions folder trees: each (organization, type) pair forms
// its own tree.
type FolderType string

const (
	FolderPrivate FolderType = "PRIVATE"
	FolderPublic  FolderType = "PUBLIC"
)

// Role is a team membership role.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleMember Role = "MEMBER"
	RoleViewer Role = "VIEWER"
)

// Models the backend accepts for a prompt.
var Models = []string{"gpt-3.5-turbo", "gpt-4", "claude-2", "llama-2"}

// ValidModel reports whether m is a known model name.
func ValidModel(m string) bool {
	for _, known := range Models {
		if m == known {
			return true
		}
	}
	return false
}

// ValidID reports whether s parses as an entity id (UUID).
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// RootFolder is the sentinel folder_id value meaning "no folder" on prompt
// list requests. Folder list requests use root_only=true instead.
const RootFolder = "root"

// Organization is a tenant.
type Organization struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// User is an account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// OrganizationMember ties a user to an organization with a role.
type OrganizationMember struct {
	ID           string    `json:"id"`
	Organization string    `json:"organization"`
	User         string    `json:"user"`
	UserEmail    string    `json:"user_email"`
	UserName     string    `json:"user_name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Team is a group of users within an organization.
type Team struct {
	ID           string    `json:"id"`
	Organization string    `json:"organization"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// TeamMember ties a user to a team with a role.
type TeamMember struct {
	ID        string    `json:"id"`
	Team      string    `json:"team"`
	User      string    `json:"user"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Category is a flat label attached to prompts, scoped to an organization.
type Category struct {
	ID           string    `json:"id"`
	Organization string    `json:"organization"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PromptCategory is the expanded category reference on a loaded prompt.
type PromptCategory struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	CategoryName string `json:"category_name"`
}

// TeamShare is the expanded team reference on a loaded prompt.
type TeamShare struct {
	ID       string `json:"id"`
	Team     string `json:"team"`
	TeamName string `json:"team_name"`
}

// Prompt is a stored prompt template.
type Prompt struct {
	ID            string           `json:"id"`
	Organization  string           `json:"organization"`
	CreatedBy     string           `json:"created_by,omitempty"`
	CreatedByName string           `json:"created_by_name,omitempty"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Prompt        string           `json:"prompt"`
	Model         string           `json:"model"`
	Visibility    Visibility       `json:"visibility"`
	Folder        string           `json:"folder,omitempty"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Categories    []PromptCategory `json:"categories,omitempty"`
	SharedTeams   []TeamShare      `json:"shared_teams,omitempty"`
}

// CategoryIDs returns the flat set of category ids on the prompt.
func (p *Prompt) CategoryIDs() []string {
	ids := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.Category)
	}
	return ids
}

// TeamIDs returns the flat set of team ids the prompt is shared with.
func (p *Prompt) TeamIDs() []string {
	ids := make([]string, 0, len(p.SharedTeams))
	for _, s := range p.SharedTeams {
		ids = append(ids, s.Team)
	}
	return ids
}

// Folder is a node in an organization's folder tree. Parent is empty at the
// root. Type is immutable after creation; only Parent is mutated by moves.
type Folder struct {
	ID           string     `json:"id"`
	Organization string     `json:"organization"`
	Name         string     `json:"name"`
	Type         FolderType `json:"type"`
	Parent       string     `json:"parent,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// WorkflowStep is one ordered prompt reference inside a workflow. Name is the
// operator-supplied label; PromptName is the display name resolved by the
// backend.
type WorkflowStep struct {
	Prompt     string `json:"prompt"`
	PromptName string `json:"prompt_name,omitempty"`
	Order      int    `json:"order"`
	Name       string `json:"name,omitempty"`
}

// Workflow is an ordered sequence of prompt references.
type Workflow struct {
	ID            string         `json:"id"`
	Organization  string         `json:"organization"`
	CreatedBy     string         `json:"created_by,omitempty"`
	CreatedByName string         `json:"created_by_name,omitempty"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Visibility    Visibility     `json:"visibility"`
	TeamIDs       []string       `json:"team_ids,omitempty"`
	Steps         []WorkflowStep `json:"steps"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Snapshot is the partial field-state captured inside one history entry.
// Absent fields stay nil so callers can distinguish "unchanged" from "empty".
type Snapshot struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Prompt      *string        `json:"prompt,omitempty"`
	Model       *string        `json:"model,omitempty"`
	Visibility  *Visibility    `json:"visibility,omitempty"`
	Folder      *string        `json:"folder,omitempty"`
	TeamIDs     []string       `json:"team_ids,omitempty"`
	Steps       []WorkflowStep `json:"steps,omitempty"`
}

// HistoryEntry is one immutable change record for a prompt or workflow,
// newest first from the backend.
type HistoryEntry struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ChangedByName string    `json:"changed_by_name"`
	ChangeSummary string    `json:"change_summary"`
	Snapshot      Snapshot  `json:"snapshot"`
}
