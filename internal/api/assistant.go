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

// ErrEmptyAudio is returned when there is no audio to send
var ErrEmptyAudio = errors.New("audio is empty")

// ChatRequest is one user message for the assistant with the conversation so far
type ChatRequest struct {
	Message string               `json:"message"`
	History []models.ChatMessage `json:"history"`
	Role    models.UserRole      `json:"user_role"`
}

// Transcribe sends recorded audio to the assistant and returns the recognized text
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", ErrEmptyAudio
	}

	var response struct {
		Text string `json:"text"`
	}
	err := c.do(ctx, request{
		function: "assistant",
		endpoint: c.Endpoints.Assistant,
		method:   http.MethodPost,
		query:    url.Values{"action": {"transcribe"}},
		body:     map[string]string{"audio": base64.StdEncoding.EncodeToString(audio)},
	}, &response)
	if err != nil {
		return "", err
	}
	return response.Text, nil
}

// Chat sends a message and returns the assistant's reply
func (c *Client) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if req.History == nil {
		req.History = []models.ChatMessage{}
	}
	if req.Role == "" {
		req.Role = models.RoleCustomer
	}

	var response struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, request{
		function: "assistant",
		endpoint: c.Endpoints.Assistant,
		method:   http.MethodPost,
		query:    url.Values{"action": {"chat"}},
		body:     req,
	}, &response)
	if err != nil {
		return "", err
	}
	return response.Message, nil
}

// CreateOrder registers a work order and returns it with its id and creation time
func (c *Client) CreateOrder(ctx context.Context, o models.NewWorkOrder) (*models.WorkOrder, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var response struct {
		OrderID   int    `json:"order_id"`
		CreatedAt string `json:"created_at"`
	}
	err := c.do(ctx, request{
		function: "assistant",
		endpoint: c.Endpoints.Assistant,
		method:   http.MethodPost,
		query:    url.Values{"action": {"create_order"}},
		body:     o,
	}, &response)
	if err != nil {
		return nil, err
	}
	return &models.WorkOrder{
		ID:              response.OrderID,
		CustomerPhone:   o.CustomerPhone,
		ContractorPhone: o.ContractorPhone,
		WorkDescription: o.WorkDescription,
		Price:           o.Price,
		Deadline:        o.Deadline,
		Status:          models.OrderPending,
		CreatedAt:       response.CreatedAt,
	}, nil
}

// SaveRecording uploads conversation audio
func (c *Client) SaveRecording(ctx context.Context, audio []byte, conversationID string, durationSeconds int, participants []string) (*models.SavedRecording, error) {
	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}
	if participants == nil {
		participants = []string{}
	}

	var response models.SavedRecording
	err := c.do(ctx, request{
		function: "assistant",
		endpoint: c.Endpoints.Assistant,
		method:   http.MethodPost,
		query:    url.Values{"action": {"save_recording"}},
		body: map[string]interface{}{
			"audio":           base64.StdEncoding.EncodeToString(audio),
			"conversation_id": conversationID,
			"duration":        durationSeconds,
			"participants":    participants,
		},
	}, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListOrders retrieves work orders, optionally of one status
func (c *Client) ListOrders(ctx context.Context, status string, limit int) ([]models.WorkOrder, error) {
	query := url.Values{"action": {"orders"}, "limit": {strconv.Itoa(limit)}}
	if status != "" {
		query.Set("status", status)
	}

	var response struct {
		Orders []models.WorkOrder `json:"orders"`
	}
	err := c.do(ctx, request{
		function: "assistant",
		endpoint: c.Endpoints.Assistant,
		method:   http.MethodGet,
		query:    query,
	}, &response)
	if err != nil {
		return nil, err
	}
	return response.Orders, nil
}

// ListRecordings retrieves stored recordings, optionally of one conversation
func (c *Client) ListRecordings(ctx context.Context, conversationID string, limit int) ([]models.Recording, error) {
	query := url.Values{"action": {"recordings"}, "limit": {strconv.Itoa(limit)}}
	if conversationID != "" {
		query.Set("conversation_id", conversationID)
	}

	var response struct {
		Recordings []models.Recording `json:"recordings"`
	}
	err := c.do(ctx, request{
		function: "assistant",
		endpoint: c.Endpoints.Assistant,
		method:   http.MethodGet,
		query:    query,
	}, &response)
	if err != nil {
		return nil, err
	}
	return response.Recordings, nil
}
