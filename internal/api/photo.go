package api

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"remont/internal/models"
)

// ErrEmptyPhoto is returned when an upload has no image data
var ErrEmptyPhoto = errors.New("photo is empty")

// ListPhotos retrieves the photos of a project
func (c *Client) ListPhotos(ctx context.Context, projectID int) ([]models.Photo, error) {
	var response struct {
		Photos []models.Photo `json:"photos"`
	}
	err := c.do(ctx, request{
		function: "photos",
		endpoint: c.Endpoints.Photos,
		method:   http.MethodGet,
		query:    url.Values{"project_id": {strconv.Itoa(projectID)}},
	}, &response)
	if err != nil {
		return nil, err
	}
	return response.Photos, nil
}

// UploadPhoto sends image content base64-encoded to the photos function
func (c *Client) UploadPhoto(ctx context.Context, projectID int, content []byte, roomName, description string) (*models.UploadedPhoto, error) {
	if projectID == 0 {
		return nil, models.ErrProjectIDRequired
	}
	if len(content) == 0 {
		return nil, ErrEmptyPhoto
	}

	var response models.UploadedPhoto
	err := c.do(ctx, request{
		function: "photos",
		endpoint: c.Endpoints.Photos,
		method:   http.MethodPost,
		body: map[string]interface{}{
			"project_id":  projectID,
			"photo":       base64.StdEncoding.EncodeToString(content),
			"room_name":   roomName,
			"description": description,
		},
	}, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// DeletePhoto removes a photo
func (c *Client) DeletePhoto(ctx context.Context, photoID int) error {
	return c.do(ctx, request{
		function: "photos",
		endpoint: c.Endpoints.Photos,
		method:   http.MethodDelete,
		query:    url.Values{"photo_id": {strconv.Itoa(photoID)}},
		body:     map[string]int{"photo_id": photoID},
	}, nil)
}
