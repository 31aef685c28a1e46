package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/shivaccounts/backend/internal/application/billing"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles document and payment endpoints
type PaymentHandler struct {
	BaseHandler
	service *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(service *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers document and payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")
	{
		documents.GET("", h.ListDocuments)
		documents.GET("/:id", h.GetDocument)
		documents.GET("/:id/payments", h.ListDocumentPayments)
	}

	payments := rg.Group("/payments")
	{
		payments.POST("", h.RecordPayment)
		payments.GET("", h.ListPayments)
		payments.GET("/:id", h.GetPayment)
		payments.DELETE("/:id", h.DeletePayment)
	}
}

// PaymentRequest is the request body for recording a payment
type PaymentRequest struct {
	Direction   string          `json:"direction" binding:"required,oneof=receipt payment"`
	DocumentID  string          `json:"document_id" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" binding:"gt=0"`
	Method      string          `json:"method" binding:"required,oneof=cash bank"`
	AccountID   string          `json:"account_id" binding:"required,uuid"`
	PaymentDate time.Time       `json:"payment_date" binding:"required"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// PaymentResponse carries the recorded payment and the re-settled document
type PaymentResponse struct {
	Payment  *billing.Payment  `json:"payment"`
	Document *billing.Document `json:"document"`
}

// RecordPayment handles POST /payments
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	documentID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	payment, doc, err := h.service.RecordPayment(billingapp.PaymentInput{
		Direction:   billing.PaymentDirection(req.Direction),
		DocumentID:  documentID,
		Amount:      req.Amount,
		Method:      billing.PaymentMethod(req.Method),
		AccountID:   accountID,
		PaymentDate: req.PaymentDate,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, PaymentResponse{Payment: payment, Document: doc})
}

// GetPayment handles GET /payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.service.GetPayment(id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// DeletePayment handles DELETE /payments/:id
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	doc, err := h.service.DeletePayment(id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"document": doc})
}

// ListPayments handles GET /payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments := h.service.ListPayments(uuid.Nil)
	h.List(c, payments, len(payments))
}

// GetDocument handles GET /documents/:id
func (h *PaymentHandler) GetDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.service.GetDocument(id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// ListDocuments handles GET /documents
func (h *PaymentHandler) ListDocuments(c *gin.Context) {
	docs := h.service.ListDocuments(
		billing.DocumentKind(c.Query("kind")),
		billing.DocumentStatus(c.Query("status")),
	)
	h.List(c, docs, len(docs))
}

// ListDocumentPayments handles GET /documents/:id/payments
func (h *PaymentHandler) ListDocumentPayments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}
	if _, err := h.service.GetDocument(id); err != nil {
		h.HandleError(c, err)
		return
	}

	payments := h.service.ListPayments(id)
	h.List(c, payments, len(payments))
}
