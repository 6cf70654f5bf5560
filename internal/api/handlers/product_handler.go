package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/service"
)

// ============================================
// Product Handler
// ============================================

type ProductHandler struct {
	productService service.ProductService
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	response := make([]models.ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	c.JSON(http.StatusOK, response)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *ProductHandler) GetProductPrice(c *gin.Context) {
	product, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": product.ID, "price": product.Price})
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(product))
}

// Bootstrap seeds the default package catalog. Calling it on a
// non-empty catalog changes nothing.
func (h *ProductHandler) Bootstrap(c *gin.Context) {
	if err := h.productService.InitializeDefaults(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to bootstrap products"})
		return
	}

	products, err := h.productService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(products)})
}

func (h *ProductHandler) lookup(c *gin.Context) (*repository.Product, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return nil, false
	}

	p, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return nil, false
	}
	return p, true
}
