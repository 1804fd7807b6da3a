package api

import (
	"context"
	"net/http"

	"remont/internal/models"
	"remont/internal/phone"
)

// SendCode asks the auth function to send a verification code by SMS
func (c *Client) SendCode(ctx context.Context, number string, role models.UserRole) (*models.CodeDelivery, error) {
	digits := phone.Normalize(number)
	if len(digits) < 11 {
		return nil, models.ErrPhoneRequired
	}
	if !role.Valid() {
		return nil, models.ErrInvalidRole
	}

	var response models.CodeDelivery
	err := c.do(ctx, request{
		function: "auth",
		endpoint: c.Endpoints.Auth,
		method:   http.MethodPost,
		body: map[string]interface{}{
			"action":    "send_code",
			"phone":     digits,
			"user_type": role,
		},
	}, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// VerifyCode checks the code and registers or returns the user
func (c *Client) VerifyCode(ctx context.Context, reg models.Registration) (*models.User, error) {
	reg.Phone = phone.Normalize(reg.Phone)
	if len(reg.Phone) < 11 {
		return nil, models.ErrPhoneRequired
	}

	body := struct {
		Action string `json:"action"`
		models.Registration
	}{Action: "verify_code", Registration: reg}

	var response struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, request{
		function: "auth",
		endpoint: c.Endpoints.Auth,
		method:   http.MethodPost,
		body:     body,
	}, &response)
	if err != nil {
		return nil, err
	}
	return &response.User, nil
}

// GetUser fetches the full profile of the user with the given phone
func (c *Client) GetUser(ctx context.Context, number string) (*models.User, error) {
	var response struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, request{
		function: "auth",
		endpoint: c.Endpoints.Auth,
		method:   http.MethodPost,
		body: map[string]string{
			"action": "get_user",
			"phone":  phone.Normalize(number),
		},
	}, &response)
	if err != nil {
		return nil, err
	}
	return &response.User, nil
}
