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
// Contact Handler
// ============================================

type ContactHandler struct {
	contactService service.ContactService
	productService service.ProductService
}

// SubmitContactForm captures a lead and hands back the WhatsApp deep
// link. Validation problems surface as a 200 with an Error status so
// the form can show the message inline.
func (h *ContactHandler) SubmitContactForm(c *gin.Context) {
	var req models.ContactFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.contactService.Submit(c.Request.Context(), &req)
	if result.Status == "Error" {
		c.JSON(http.StatusOK, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ============================================
// Admin operations
// ============================================

func (h *ContactHandler) GetAllSubmissions(c *gin.Context) {
	submissions, err := h.contactService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list submissions"})
		return
	}

	response := make([]models.ContactFormResponse, len(submissions))
	for i, s := range submissions {
		response[i] = h.toResponse(c, s)
	}
	c.JSON(http.StatusOK, response)
}

func (h *ContactHandler) GetSubmission(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	submission, err := h.contactService.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submission"})
		return
	}

	c.JSON(http.StatusOK, h.toResponse(c, submission))
}

func (h *ContactHandler) toResponse(c *gin.Context, s *repository.ContactFormSubmission) models.ContactFormResponse {
	productName := ""
	if product, err := h.productService.GetByID(c.Request.Context(), s.ProductID); err == nil {
		productName = product.Name
	}

	return models.ContactFormResponse{
		ID:              s.ID,
		CustomerName:    s.CustomerName,
		PhoneNumber:     s.PhoneNumber,
		CustomerAddress: s.CustomerAddress,
		Latitude:        s.Latitude,
		Longitude:       s.Longitude,
		ProductID:       s.ProductID,
		PackagePrice:    s.PackagePrice,
		SubmittedBy:     s.SubmittedBy,
		SubmittedAt:     s.SubmittedAt,
		WhatsappLink:    h.contactService.WhatsAppLink(s, productName),
		MapsLink:        h.contactService.MapsLink(s.Latitude, s.Longitude),
	}
}
