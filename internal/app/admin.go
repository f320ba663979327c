package app

import (
	"context"

	"github.com/chazuruo/promptctl/internal/api"
	"github.com/chazuruo/promptctl/internal/crud"
	apperrors "github.com/chazuruo/promptctl/internal/errors"
)

// ListTeams lists the session organization's teams.
func (a *App) ListTeams(ctx context.Context, page int) (*api.Page[api.Team], error) {
	_, orgID, err := a.withOrg()
	if err != nil {
		return nil, err
	}
	return a.Client.ListTeams(ctx, api.TeamFilter{
		OrganizationID: orgID,
		Ordering:       a.Config.Lists.Ordering,
		Page:           page,
	})
}

// CreateTeam creates a team from validated form values.
func (a *App) CreateTeam(ctx context.Context, v *crud.Values) (*api.Team, error) {
	_, orgID, err := a.withOrg()
	if err != nil {
		return nil, err
	}
	res := crud.TeamResource()
	if err := v.Validate(res); err != nil {
		return nil, err
	}
	return a.Client.CreateTeam(ctx, api.CreateTeamInput{
		Organization: orgID,
		Name:         v.Get("name"),
		Description:  v.Get("description"),
	})
}

// UpdateTeam patches a team from validated form values.
func (a *App) UpdateTeam(ctx context.Context, id string, v *crud.Values) (*api.Team, error) {
	if _, err := a.RequireSession(); err != nil {
		return nil, err
	}
	res := crud.TeamResource()
	if err := v.Validate(res); err != nil {
		return nil, err
	}
	return a.Client.UpdateTeam(ctx, id, v.Payload(res))
}

// DeleteTeam removes a team.
func (a *App) DeleteTeam(ctx context.Context, id string) error {
	if _, err := a.RequireSession(); err != nil {
		return err
	}
	return a.Client.DeleteTeam(ctx, id)
}

// TeamMembers lists a team's members.
func (a *App) TeamMembers(ctx context.Context, teamID string) ([]api.TeamMember, error) {
	if _, err := a.RequireSession(); err != nil {
		return nil, err
	}
	return a.Client.TeamMembers(ctx, teamID)
}

// AddTeamMember adds a user to a team. An empty role defaults server-side.
func (a *App) AddTeamMember(ctx context.Context, teamID, userID string, role api.Role) error {
	if _, err := a.RequireSession(); err != nil {
		return err
	}
	return a.Client.AddTeamMember(ctx, teamID, userID, role)
}

// RemoveTeamMember removes a user from a team.
func (a *App) RemoveTeamMember(ctx context.Context, teamID, userID string) error {
	if _, err := a.RequireSession(); err != nil {
		return err
	}
	return a.Client.RemoveTeamMember(ctx, teamID, userID)
}

// ListUsers lists the organization's users.
func (a *App) ListUsers(ctx context.Context) (*api.Page[api.User], error) {
	_, orgID, err := a.withOrg()
	if err != nil {
		return nil, err
	}
	return a.Client.ListUsers(ctx, orgID)
}

// CreateUser creates a user in the organization.
func (a *App) CreateUser(ctx context.Context, name, email, password string) (*api.User, error) {
	_, orgID, err := a.withOrg()
	if err != nil {
		return nil, err
	}
	if email == "" {
		return nil, apperrors.Invalid("email", "email is required")
	}
	return a.Client.CreateUser(ctx, api.CreateUserInput{
		Name:           name,
		Email:          email,
		Password:       password,
		OrganizationID: orgID,
	})
}

// DeleteUser soft-deletes a user from the organization.
func (a *App) DeleteUser(ctx context.Context, userID string) error {
	_, orgID, err := a.withOrg()
	if err != nil {
		return err
	}
	return a.Client.DeleteUser(ctx, userID, orgID)
}

// AssignTeam puts a user on a team; RemoveTeam is its inverse.
func (a *App) AssignTeam(ctx context.Context, userID, teamID string) error {
	if _, err := a.RequireSession(); err != nil {
		return err
	}
	return a.Client.AssignTeam(ctx, userID, teamID)
}

// RemoveTeam takes a user off a team.
func (a *App) RemoveTeam(ctx context.Context, userID, teamID string) error {
	if _, err := a.RequireSession(); err != nil {
		return err
	}
	return a.Client.RemoveTeam(ctx, userID, teamID)
}

// ListCategories lists the organization's categories.
func (a *App) ListCategories(ctx context.Context) ([]api.Category, error) {
	_, orgID, err := a.withOrg()
	if err != nil {
		return nil, err
	}
	return a.Client.ListCategories(ctx, orgID)
}

// CreateCategory creates a category from validated form values.
func (a *App) CreateCategory(ctx context.Context, v *crud.Values) (*api.Category, error) {
	_, orgID, err := a.withOrg()
	if err != nil {
		return nil, err
	}
	res := crud.CategoryResource()
	if err := v.Validate(res); err != nil {
		return nil, err
	}
	return a.Client.CreateCategory(ctx, api.CreateCategoryInput{
		Organization: orgID,
		Name:         v.Get("name"),
		Description:  v.Get("description"),
	})
}

// UpdateCategory patches a category from validated form values.
func (a *App) UpdateCategory(ctx context.Context, id string, v *crud.Values) (*api.Category, error) {
	if _, err := a.RequireSession(); err != nil {
		return nil, err
	}
	res := crud.CategoryResource()
	if err := v.Validate(res); err != nil {
		return nil, err
	}
	return a.Client.UpdateCategory(ctx, id, v.Payload(res))
}

// DeleteCategory removes a category.
func (a *App) DeleteCategory(ctx context.Context, id string) error {
	if _, err := a.RequireSession(); err != nil {
		return err
	}
	return a.Client.DeleteCategory(ctx, id)
}

// OrganizationMembers lists the organization's membership records.
func (a *App) OrganizationMembers(ctx context.Context) ([]api.OrganizationMember, error) {
	_, orgID, err := a.withOrg()
	if err != nil {
		return nil, err
	}
	return a.Client.OrganizationMembers(ctx, orgID)
}

// AddOrganizationMember invites an existing user into the organization.
func (a *App) AddOrganizationMember(ctx context.Context, email string, role api.Role) error {
	_, orgID, err := a.withOrg()
	if err != nil {
		return err
	}
	if email == "" {
		return apperrors.Invalid("email", "email is required")
	}
	return a.Client.AddOrganizationMember(ctx, orgID, email, string(role))
}
