package models

// Supplier is the company offering a catalog product
type Supplier struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"`
	Verified bool    `json:"verified"`
}

// Product is a catalog item offered by a supplier
type Product struct {
	ID                int                    `json:"id"`
	Name              string                 `json:"name"`
	Description       string                 `json:"description,omitempty"`
	Category          string                 `json:"category"`
	Subcategory       string                 `json:"subcategory,omitempty"`
	Price             float64                `json:"price"`
	Unit              string                 `json:"unit"`
	ImageURL          string                 `json:"image_url,omitempty"`
	InStock           bool                   `json:"in_stock"`
	MinOrderQuantity  float64                `json:"min_order_quantity"`
	DeliveryAvailable bool                   `json:"delivery_available"`
	DeliveryCost      float64                `json:"delivery_cost"`
	DeliveryDays      int                    `json:"delivery_days"`
	FloorLiftingCost  float64                `json:"floor_lifting_cost"`
	Specifications    map[string]interface{} `json:"specifications,omitempty"`
	Supplier          Supplier               `json:"supplier"`
}

// ProductFilter narrows a catalog listing
type ProductFilter struct {
	Category   string
	SupplierID int
	Search     string
	// IncludeOutOfStock lists products that are not in stock as well
	IncludeOutOfStock bool
}

// Catalog is a page of products with the available categories
type Catalog struct {
	Products   []Product `json:"products"`
	Categories []string  `json:"categories"`
	Total      int       `json:"total"`
}

// ProjectProduct is a catalog product added to a project
type ProjectProduct struct {
	ID               int     `json:"id"`
	Quantity         float64 `json:"quantity"`
	RoomName         string  `json:"room_name,omitempty"`
	ProductName      string  `json:"product_name"`
	Price            float64 `json:"price"`
	Unit             string  `json:"unit"`
	DeliveryCost     float64 `json:"delivery_cost"`
	FloorLiftingCost float64 `json:"floor_lifting_cost"`
	SupplierName     string  `json:"supplier_name"`
	Total            float64 `json:"total"`
}

// ProjectProductSummary totals the products of a project
type ProjectProductSummary struct {
	ProductsTotal float64 `json:"products_total"`
	DeliveryTotal float64 `json:"delivery_total"`
	LiftingTotal  float64 `json:"lifting_total"`
	GrandTotal    float64 `json:"grand_total"`
}

// NewProduct holds the fields sent when an administrator adds a catalog product
type NewProduct struct {
	SupplierID       int     `json:"supplier_id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	Subcategory      string  `json:"subcategory"`
	Price            float64 `json:"price"`
	Unit             string  `json:"unit"`
	DeliveryCost     float64 `json:"delivery_cost"`
	FloorLiftingCost float64 `json:"floor_lifting_cost"`
	InStock          bool    `json:"in_stock"`
}

// Validate checks the fields the suppliers function requires
func (p NewProduct) Validate() error {
	if p.Name == "" {
		return ErrProductNameRequired
	}
	if p.Category == "" {
		return ErrProductCategoryRequired
	}
	if p.Price < 0 || p.DeliveryCost < 0 || p.FloorLiftingCost < 0 {
		return ErrNegativePrice
	}
	return nil
}

// ProductUpdate carries the product fields to change. Nil fields are left untouched.
type ProductUpdate struct {
	Name             *string  `json:"name,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Category         *string  `json:"category,omitempty"`
	Subcategory      *string  `json:"subcategory,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	Unit             *string  `json:"unit,omitempty"`
	DeliveryCost     *float64 `json:"delivery_cost,omitempty"`
	FloorLiftingCost *float64 `json:"floor_lifting_cost,omitempty"`
	InStock          *bool    `json:"in_stock,omitempty"`
}

// Validate rejects negative prices
func (u ProductUpdate) Validate() error {
	for _, v := range []*float64{u.Price, u.DeliveryCost, u.FloorLiftingCost} {
		if v != nil && *v < 0 {
			return ErrNegativePrice
		}
	}
	return nil
}
