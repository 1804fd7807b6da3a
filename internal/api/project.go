package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"remont/internal/models"
)

// ListProjects retrieves the projects of a user, newest first
func (c *Client) ListProjects(ctx context.Context, userID int) ([]models.Project, error) {
	var response struct {
		Projects []models.Project `json:"projects"`
	}
	err := c.do(ctx, request{
		function: "projects",
		endpoint: c.Endpoints.Projects,
		method:   http.MethodGet,
		query:    url.Values{"user_id": {strconv.Itoa(userID)}},
	}, &response)
	if err != nil {
		return nil, err
	}
	return response.Projects, nil
}

// GetProject retrieves a project with its measurements and photos
func (c *Client) GetProject(ctx context.Context, projectID int) (*models.ProjectDetail, error) {
	var detail models.ProjectDetail
	err := c.do(ctx, request{
		function: "projects",
		endpoint: c.Endpoints.Projects,
		method:   http.MethodGet,
		query:    url.Values{"project_id": {strconv.Itoa(projectID)}},
	}, &detail)
	if IsNotFound(err) {
		return nil, fmt.Errorf("%w: %d", models.ErrProjectNotFound, projectID)
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateProject creates a project and returns its id
func (c *Client) CreateProject(ctx context.Context, p models.NewProject) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if p.Type == "" {
		p.Type = models.ProjectApartment
	}

	var response struct {
		ProjectID int `json:"project_id"`
	}
	err := c.do(ctx, request{
		function: "projects",
		endpoint: c.Endpoints.Projects,
		method:   http.MethodPost,
		body:     p,
	}, &response)
	if err != nil {
		return 0, err
	}
	return response.ProjectID, nil
}

// UpdateProject changes the non-nil fields of u
func (c *Client) UpdateProject(ctx context.Context, projectID int, u models.ProjectUpdate) error {
	if u.Empty() {
		return models.ErrNothingToUpdate
	}
	if err := u.Validate(); err != nil {
		return err
	}

	body, err := withID("project_id", projectID, u)
	if err != nil {
		return err
	}
	return c.do(ctx, request{
		function: "projects",
		endpoint: c.Endpoints.Projects,
		method:   http.MethodPut,
		body:     body,
	}, nil)
}

// withID flattens v into a JSON object and adds the id field the update
// endpoints expect next to the changed fields.
func withID(key string, id int, v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error marshalling request: %w", err)
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("error marshalling request: %w", err)
	}
	fields[key] = id
	return fields, nil
}
