package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"remont/internal/models"
)

// AdminStats retrieves the platform overview
func (c *Client) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var response struct {
		Stats models.AdminStats `json:"stats"`
	}
	err := c.do(ctx, request{
		function: "admin",
		endpoint: c.Endpoints.Admin,
		method:   http.MethodGet,
		query:    url.Values{"action": {"stats"}},
		admin:    true,
	}, &response)
	if err != nil {
		return nil, err
	}
	return &response.Stats, nil
}

// AdminProjects retrieves one page of all projects, optionally by status
func (c *Client) AdminProjects(ctx context.Context, limit, offset int, status string) (*models.AdminProjectPage, error) {
	query := url.Values{
		"action": {"projects"},
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	if status != "" {
		query.Set("status", status)
	}

	var page models.AdminProjectPage
	err := c.do(ctx, request{
		function: "admin",
		endpoint: c.Endpoints.Admin,
		method:   http.MethodGet,
		query:    query,
		admin:    true,
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// AdminUsers retrieves all users, optionally of one role
func (c *Client) AdminUsers(ctx context.Context, role models.UserRole) ([]models.User, error) {
	query := url.Values{"action": {"users"}}
	if role != "" {
		query.Set("user_type", string(role))
	}

	var response struct {
		Users []models.User `json:"users"`
	}
	err := c.do(ctx, request{
		function: "admin",
		endpoint: c.Endpoints.Admin,
		method:   http.MethodGet,
		query:    query,
		admin:    true,
	}, &response)
	if err != nil {
		return nil, err
	}
	return response.Users, nil
}
