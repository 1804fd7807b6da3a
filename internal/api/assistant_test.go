package api

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remont/internal/models"
)

func TestTranscribeAndChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		switch r.URL.Query().Get("action") {
		case "transcribe":
			audio, err := base64.StdEncoding.DecodeString(body["audio"].(string))
			assert.NoError(t, err)
			assert.Equal(t, "RIFF", string(audio))
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "text": "Сколько стоит укладка ламината?"})
		case "chat":
			assert.Equal(t, "Сколько стоит укладка ламината?", body["message"])
			assert.Equal(t, "contractor", body["user_role"])
			assert.Len(t, body["history"], 1)
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Около 800 ₽ за м²."})
		default:
			t.Errorf("unexpected action %q", r.URL.Query().Get("action"))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	text, err := client.Transcribe(context.Background(), []byte("RIFF"))
	require.NoError(t, err)

	reply, err := client.Chat(context.Background(), ChatRequest{
		Message: text,
		History: []models.ChatMessage{{Role: models.ChatRoleAssistant, Content: "Здравствуйте!"}},
		Role:    models.RoleContractor,
	})
	require.NoError(t, err)
	assert.Equal(t, "Около 800 ₽ за м².", reply)

	_, err = client.Transcribe(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyAudio)
}

func TestChatSendsEmptyHistoryAsArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.Equal(t, []interface{}{}, body["history"])
		assert.Equal(t, "customer", body["user_role"])
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "ok"})
	}))
	defer server.Close()

	_, err := newTestClient(t, server).Chat(context.Background(), ChatRequest{Message: "привет"})
	require.NoError(t, err)
}

func TestOrdersAndRecordings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch q.Get("action") {
		case "create_order":
			body := decodeBody(t, r)
			assert.Equal(t, "conv-1", body["conversation_id"])
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "order_id": 17, "created_at": "2025-04-01T09:00:00"})
		case "orders":
			assert.Equal(t, "pending", q.Get("status"))
			assert.Equal(t, "50", q.Get("limit"))
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "orders": []map[string]interface{}{
				{"id": 17, "customer_phone": "79990000001", "contractor_phone": "79990000002", "work_description": "Плитка", "price": 45000, "status": "pending"},
			}})
		case "recordings":
			assert.Equal(t, "conv-1", q.Get("conversation_id"))
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "recordings": []map[string]interface{}{
				{"id": 2, "conversation_id": "conv-1", "audio_url": "https://cdn/r.webm", "duration": 63, "participants": []string{"customer", "yasen"}},
			}})
		case "save_recording":
			body := decodeBody(t, r)
			assert.Equal(t, 63.0, body["duration"])
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "recording_id": 2, "audio_url": "https://cdn/r.webm"})
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	ctx := context.Background()

	order, err := client.CreateOrder(ctx, models.NewWorkOrder{
		CustomerPhone: "79990000001", ContractorPhone: "79990000002",
		WorkDescription: "Плитка", Price: 45000, ConversationID: "conv-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 17, order.ID)
	assert.Equal(t, models.OrderPending, order.Status)

	_, err = client.CreateOrder(ctx, models.NewWorkOrder{CustomerPhone: "1", ContractorPhone: "2"})
	assert.ErrorIs(t, err, models.ErrWorkDescriptionRequired)

	orders, err := client.ListOrders(ctx, models.OrderPending, 50)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 45000.0, orders[0].Price)

	saved, err := client.SaveRecording(ctx, []byte("webm"), "conv-1", 63, []string{"customer", "yasen"})
	require.NoError(t, err)
	assert.Equal(t, 2, saved.ID)

	recordings, err := client.ListRecordings(ctx, "conv-1", 10)
	require.NoError(t, err)
	require.Len(t, recordings, 1)
	assert.Equal(t, []string{"customer", "yasen"}, recordings[0].Participants)
}

func TestOrderMessage(t *testing.T) {
	msg := OrderMessage(17, "Укладка плитки", 45000, "2025-05-01")
	assert.True(t, strings.HasPrefix(msg, "🔔 Новый наряд-заказ #17\n\n📋 Работы: Укладка плитки\n\n💰 Стоимость: 45"))
	assert.Contains(t, msg, "📅 Срок: 2025-05-01\n")
	assert.True(t, strings.HasSuffix(msg, "\n✅ Подтвердите получение заказа"))

	bare := OrderMessage(3, "Замер", 0, "")
	assert.NotContains(t, bare, "Стоимость")
	assert.NotContains(t, bare, "Срок")
}

func TestNotifications(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		switch body["action"] {
		case "send":
			assert.Equal(t, "both", body["type"])
			assert.Equal(t, "79991234567", body["phone"])
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "results": map[string]interface{}{
				"sms":      map[string]interface{}{"success": true, "message": "SMS sent successfully"},
				"telegram": map[string]interface{}{"success": false, "error": "Telegram bot token not configured"},
			}})
		case "test":
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "result": map[string]interface{}{"success": true}})
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	results, err := client.SendOrderNotification(context.Background(), OrderNotification{
		Channel: ChannelBoth, Phone: "+7 999 123-45-67", TelegramID: "555", OrderID: 17, WorkDescription: "Плитка",
	})
	require.NoError(t, err)
	assert.True(t, results["sms"].Success)
	assert.False(t, results["telegram"].Success)

	result, err := client.TestNotification(context.Background(), ChannelSMS, "79991234567", "")
	require.NoError(t, err)
	assert.True(t, result.Success)

	_, err = client.TestNotification(context.Background(), ChannelTelegram, "", "")
	assert.Error(t, err)
	_, err = client.SendOrderNotification(context.Background(), OrderNotification{Channel: "pigeon"})
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			assert.Equal(t, "Напольные покрытия", r.URL.Query().Get("category"))
			assert.Equal(t, "true", r.URL.Query().Get("in_stock"))
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"products": []map[string]interface{}{{
					"id": 4, "name": "Ламинат", "category": "Напольные покрытия", "price": 1200, "unit": "м²", "in_stock": true,
					"supplier": map[string]interface{}{"id": 1, "name": "СтройБаза", "rating": 4.7, "verified": true},
				}},
				"categories": []string{"Напольные покрытия"},
				"total":      1,
			})
			return
		}
		body := decodeBody(t, r)
		switch body["action"] {
		case "add_to_project":
			assert.Equal(t, 20.0, body["quantity"])
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "item_id": 8})
		case "get_project_products":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"items":   []map[string]interface{}{{"id": 8, "quantity": 20, "product_name": "Ламинат", "price": 1200, "total": 24000}},
				"summary": map[string]interface{}{"products_total": 24000, "delivery_total": 500, "lifting_total": 0, "grand_total": 24500},
			})
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	catalog, err := client.ListProducts(context.Background(), models.ProductFilter{Category: "Напольные покрытия"})
	require.NoError(t, err)
	require.Len(t, catalog.Products, 1)
	assert.Equal(t, "СтройБаза", catalog.Products[0].Supplier.Name)

	itemID, err := client.AddProductToProject(context.Background(), 2, 4, 20, "Гостиная")
	require.NoError(t, err)
	assert.Equal(t, 8, itemID)

	items, summary, err := client.ProjectProducts(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 24500.0, summary.GrandTotal)
}

func TestProductManagement(t *testing.T) {
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suppliers", r.URL.Path)
		assert.Equal(t, "s3cret", r.Header.Get("X-Admin-Token"))
		calls = append(calls, r.Method)

		switch r.Method {
		case http.MethodPost:
			body := decodeBody(t, r)
			assert.Equal(t, "create_product", body["action"])
			assert.Equal(t, "Плитка", body["name"])
			assert.Equal(t, "шт", body["unit"])
			assert.Equal(t, 1.0, body["supplier_id"])
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "product_id": 15})
		case http.MethodPut:
			body := decodeBody(t, r)
			assert.Equal(t, 15.0, body["id"])
			assert.Equal(t, 990.0, body["price"])
			assert.NotContains(t, body, "name")
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
		case http.MethodDelete:
			assert.Equal(t, "15", r.URL.Query().Get("id"))
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	client.AdminToken = "s3cret"
	ctx := context.Background()

	id, err := client.CreateProduct(ctx, models.NewProduct{SupplierID: 1, Name: "Плитка", Category: "Плитка", Price: 900, InStock: true})
	require.NoError(t, err)
	assert.Equal(t, 15, id)

	price := 990.0
	require.NoError(t, client.UpdateProduct(ctx, 15, models.ProductUpdate{Price: &price}))
	require.NoError(t, client.DeleteProduct(ctx, 15))
	assert.Equal(t, []string{http.MethodPost, http.MethodPut, http.MethodDelete}, calls)

	_, err = client.CreateProduct(ctx, models.NewProduct{Category: "Плитка"})
	assert.ErrorIs(t, err, models.ErrProductNameRequired)
	assert.ErrorIs(t, client.UpdateProduct(ctx, 15, models.ProductUpdate{}), models.ErrNothingToUpdate)
	negative := -1.0
	assert.ErrorIs(t, client.UpdateProduct(ctx, 15, models.ProductUpdate{Price: &negative}), models.ErrNegativePrice)
	assert.Len(t, calls, 3)
}
