package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"remont/internal/models"
)

// CreatedMeasurement is the id and computed area of a new measurement
type CreatedMeasurement struct {
	ID   int     `json:"measurement_id"`
	Area float64 `json:"area"`
}

// ListMeasurements retrieves the measurements of a project
func (c *Client) ListMeasurements(ctx context.Context, projectID int) ([]models.Measurement, error) {
	var response struct {
		Measurements []models.Measurement `json:"measurements"`
	}
	err := c.do(ctx, request{
		function: "measurements",
		endpoint: c.Endpoints.Measurements,
		method:   http.MethodGet,
		query:    url.Values{"project_id": {strconv.Itoa(projectID)}},
	}, &response)
	if err != nil {
		return nil, err
	}
	return response.Measurements, nil
}

// CreateMeasurement records a room measurement
func (c *Client) CreateMeasurement(ctx context.Context, m models.NewMeasurement) (*CreatedMeasurement, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var response CreatedMeasurement
	err := c.do(ctx, request{
		function: "measurements",
		endpoint: c.Endpoints.Measurements,
		method:   http.MethodPost,
		body:     m,
	}, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// UpdateMeasurement changes a measurement; the remote function recomputes its area
func (c *Client) UpdateMeasurement(ctx context.Context, measurementID int, u models.MeasurementUpdate) error {
	body, err := withID("measurement_id", measurementID, u)
	if err != nil {
		return err
	}
	if len(body) == 1 {
		return models.ErrNothingToUpdate
	}
	return c.do(ctx, request{
		function: "measurements",
		endpoint: c.Endpoints.Measurements,
		method:   http.MethodPut,
		body:     body,
	}, nil)
}

// DeleteMeasurement removes a measurement
func (c *Client) DeleteMeasurement(ctx context.Context, measurementID int) error {
	return c.do(ctx, request{
		function: "measurements",
		endpoint: c.Endpoints.Measurements,
		method:   http.MethodDelete,
		query:    url.Values{"measurement_id": {strconv.Itoa(measurementID)}},
		body:     map[string]int{"measurement_id": measurementID},
	}, nil)
}
