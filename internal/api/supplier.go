package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"remont/internal/models"
)

// ListProducts retrieves catalog products matching filter
func (c *Client) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.Catalog, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.SupplierID != 0 {
		query.Set("supplier_id", strconv.Itoa(filter.SupplierID))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	query.Set("in_stock", strconv.FormatBool(!filter.IncludeOutOfStock))

	var catalog models.Catalog
	err := c.do(ctx, request{
		function: "suppliers",
		endpoint: c.Endpoints.Suppliers,
		method:   http.MethodGet,
		query:    query,
	}, &catalog)
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}

// AddProductToProject adds quantity units of a product to a project and returns the item id
func (c *Client) AddProductToProject(ctx context.Context, projectID, productID int, quantity float64, roomName string) (int, error) {
	if projectID == 0 {
		return 0, models.ErrProjectIDRequired
	}

	var response struct {
		ItemID int `json:"item_id"`
	}
	err := c.do(ctx, request{
		function: "suppliers",
		endpoint: c.Endpoints.Suppliers,
		method:   http.MethodPost,
		body: map[string]interface{}{
			"action":     "add_to_project",
			"project_id": projectID,
			"product_id": productID,
			"quantity":   quantity,
			"room_name":  roomName,
		},
	}, &response)
	if err != nil {
		return 0, err
	}
	return response.ItemID, nil
}

// ProjectProducts lists the catalog products added to a project with their totals
func (c *Client) ProjectProducts(ctx context.Context, projectID int) ([]models.ProjectProduct, *models.ProjectProductSummary, error) {
	var response struct {
		Items   []models.ProjectProduct      `json:"items"`
		Summary models.ProjectProductSummary `json:"summary"`
	}
	err := c.do(ctx, request{
		function: "suppliers",
		endpoint: c.Endpoints.Suppliers,
		method:   http.MethodPost,
		body: map[string]interface{}{
			"action":     "get_project_products",
			"project_id": projectID,
		},
	}, &response)
	if err != nil {
		return nil, nil, err
	}
	return response.Items, &response.Summary, nil
}

// CreateProduct adds a product to the catalog and returns its id
func (c *Client) CreateProduct(ctx context.Context, p models.NewProduct) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if p.Unit == "" {
		p.Unit = "шт"
	}

	body := struct {
		Action string `json:"action"`
		models.NewProduct
	}{Action: "create_product", NewProduct: p}

	var response struct {
		ID        int `json:"id"`
		ProductID int `json:"product_id"`
	}
	err := c.do(ctx, request{
		function: "suppliers",
		endpoint: c.Endpoints.Suppliers,
		method:   http.MethodPost,
		body:     body,
		admin:    true,
	}, &response)
	if err != nil {
		return 0, err
	}
	if response.ProductID != 0 {
		return response.ProductID, nil
	}
	return response.ID, nil
}

// UpdateProduct changes the given fields of a catalog product
func (c *Client) UpdateProduct(ctx context.Context, productID int, u models.ProductUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}
	body, err := withID("id", productID, u)
	if err != nil {
		return err
	}
	if len(body) == 1 {
		return models.ErrNothingToUpdate
	}
	return c.do(ctx, request{
		function: "suppliers",
		endpoint: c.Endpoints.Suppliers,
		method:   http.MethodPut,
		body:     body,
		admin:    true,
	}, nil)
}

// DeleteProduct removes a product from the catalog
func (c *Client) DeleteProduct(ctx context.Context, productID int) error {
	return c.do(ctx, request{
		function: "suppliers",
		endpoint: c.Endpoints.Suppliers,
		method:   http.MethodDelete,
		query:    url.Values{"id": {strconv.Itoa(productID)}},
		admin:    true,
	}, nil)
}
