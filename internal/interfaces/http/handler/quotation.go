package handler

import (
	"fmt"
	"net/http"

	financeapp "github.com/OpianKyle/opianrer-sub001/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuotationHandler handles investment quotation and pricing endpoints
type QuotationHandler struct {
	BaseHandler
	quotationService *financeapp.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotationService *financeapp.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// RegisterRoutes registers quotation routes
func (h *QuotationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotations := rg.Group("/quotations")
	{
		quotations.POST("/quote", h.Quote)
		quotations.POST("", h.Create)
		quotations.GET("/:id", h.GetByID)
		quotations.GET("/:id/pdf", h.DownloadPDF)
		quotations.POST("/:id/send", h.Send)
		quotations.POST("/:id/accept", h.Accept)
		quotations.DELETE("/:id", h.Delete)
	}

	rates := rg.Group("/rates")
	{
		rates.GET("", h.ListRates)
		rates.PUT("", h.SetRate)
	}

	rg.GET("/clients/:id/quotations", h.ListForClient)
}

// Quote previews a maturity value without saving anything
func (h *QuotationHandler) Quote(c *gin.Context) {
	var req financeapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quote, err := h.quotationService.Quote(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quote)
}

// Create creates a draft quotation with the rate frozen at creation
func (h *QuotationHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotation, err := h.quotationService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, quotation)
}

// GetByID returns one quotation
func (h *QuotationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quotation, err := h.quotationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// ListForClient returns a client's quotations, newest first
func (h *QuotationHandler) ListForClient(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	quotations, err := h.quotationService.ListForClient(c.Request.Context(), clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotations)
}

// DownloadPDF streams the rendered quotation document
func (h *QuotationHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	pdf, err := h.quotationService.RenderPDF(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=quotation-%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Send renders the quotation PDF and emails it to the client
func (h *QuotationHandler) Send(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quotation, err := h.quotationService.Send(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// Accept marks a sent quotation as accepted
func (h *QuotationHandler) Accept(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quotation, err := h.quotationService.Accept(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quotation)
}

// Delete removes a draft quotation
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListRates returns the term to rate pricing table
func (h *QuotationHandler) ListRates(c *gin.Context) {
	rates, err := h.quotationService.ListRates(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rates)
}

// SetRate creates or updates the rate offered for a term
func (h *QuotationHandler) SetRate(c *gin.Context) {
	var req financeapp.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate, err := h.quotationService.SetRate(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rate)
}
