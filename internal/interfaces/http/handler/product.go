package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/retailcore/backend/internal/application/catalog"
	"github.com/shopspring/decimal"
)

// ProductHandler serves tenant product endpoints
type ProductHandler struct {
	BaseHandler
	products *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *catalog.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// CreateProductRequest is the product creation payload
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" binding:"min=0"`
}

// ImportProductsRequest is the bulk import payload
type ImportProductsRequest struct {
	Products []CreateProductRequest `json:"products" binding:"required,min=1,dive"`
}

func (r CreateProductRequest) toInput() catalog.CreateProductInput {
	return catalog.CreateProductInput{
		Name:     r.Name,
		SKU:      r.SKU,
		Price:    r.Price,
		Quantity: r.Quantity,
	}
}

// Create adds a single product, subject to the plan's product ceiling
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid product payload")
		return
	}

	record, decision, err := h.products.CreateProduct(c.Request.Context(), tenantRef(c), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !decision.Allowed {
		h.LimitExceeded(c, decision)
		return
	}

	h.Created(c, record)
}

// Import adds a batch of products; the ceiling is checked once for the
// whole batch
func (h *ProductHandler) Import(c *gin.Context) {
	var req ImportProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid import payload")
		return
	}

	inputs := make([]catalog.CreateProductInput, 0, len(req.Products))
	for _, product := range req.Products {
		inputs = append(inputs, product.toInput())
	}

	records, decision, err := h.products.ImportProducts(c.Request.Context(), tenantRef(c), inputs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !decision.Allowed {
		h.LimitExceeded(c, decision)
		return
	}

	h.Created(c, gin.H{"imported": len(records), "products": records})
}

// List returns the tenant's products
func (h *ProductHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	products, err := h.products.ListProducts(c.Request.Context(), tenantRef(c), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}
