package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	mdapp "github.com/shivaccounts/backend/internal/application/masterdata"
	"github.com/shivaccounts/backend/internal/domain/masterdata"
	"github.com/shopspring/decimal"
)

// MasterDataHandler handles contact, product, tax and account endpoints
type MasterDataHandler struct {
	BaseHandler
	service *mdapp.Service
}

// NewMasterDataHandler creates a new MasterDataHandler
func NewMasterDataHandler(service *mdapp.Service) *MasterDataHandler {
	return &MasterDataHandler{service: service}
}

// RegisterRoutes registers master data routes
func (h *MasterDataHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contacts := rg.Group("/contacts")
	{
		contacts.POST("", h.CreateContact)
		contacts.GET("", h.ListContacts)
		contacts.GET("/:id", h.GetContact)
		contacts.PUT("/:id", h.UpdateContact)
		contacts.DELETE("/:id", h.DeleteContact)
	}

	products := rg.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}

	taxes := rg.Group("/taxes")
	{
		taxes.POST("", h.CreateTax)
		taxes.GET("", h.ListTaxes)
		taxes.GET("/:id", h.GetTax)
		taxes.PUT("/:id", h.UpdateTax)
		taxes.DELETE("/:id", h.DeleteTax)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:id", h.GetAccount)
		accounts.PUT("/:id", h.UpdateAccount)
		accounts.DELETE("/:id", h.DeleteAccount)
	}
}

// ContactRequest is the request body for creating or updating a contact
type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Kind    string `json:"kind" binding:"required,oneof=customer vendor both"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Mobile  string `json:"mobile" binding:"max=20"`
	City    string `json:"city" binding:"max=100"`
	State   string `json:"state" binding:"max=100"`
	Pincode string `json:"pincode" binding:"max=10"`
}

func (r *ContactRequest) toInput() mdapp.ContactInput {
	return mdapp.ContactInput{
		Name:   r.Name,
		Kind:   masterdata.ContactKind(r.Kind),
		Email:  r.Email,
		Mobile: r.Mobile,
		Address: masterdata.Address{
			City:    r.City,
			State:   r.State,
			Pincode: r.Pincode,
		},
	}
}

// CreateContact handles POST /contacts
func (h *MasterDataHandler) CreateContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contact, err := h.service.CreateContact(req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contact)
}

// GetContact handles GET /contacts/:id
func (h *MasterDataHandler) GetContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	contact, err := h.service.GetContact(id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// UpdateContact handles PUT /contacts/:id
func (h *MasterDataHandler) UpdateContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid contact ID")
		return
	}
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contact, err := h.service.UpdateContact(id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// DeleteContact handles DELETE /contacts/:id
func (h *MasterDataHandler) DeleteContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid contact ID")
		return
	}
	if err := h.service.DeleteContact(id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListContacts handles GET /contacts
func (h *MasterDataHandler) ListContacts(c *gin.Context) {
	contacts := h.service.ListContacts(c.Query("search"))
	h.List(c, contacts, len(contacts))
}

// ProductRequest is the request body for creating or updating a product
type ProductRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=200"`
	Kind            string          `json:"kind" binding:"required,oneof=goods service"`
	SalesPrice      decimal.Decimal `json:"sales_price"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	SaleTaxRate     decimal.Decimal `json:"sale_tax_rate"`
	PurchaseTaxRate decimal.Decimal `json:"purchase_tax_rate"`
	HSNCode         string          `json:"hsn_code" binding:"max=20"`
	Category        string          `json:"category" binding:"max=100"`
}

func (r *ProductRequest) toInput() mdapp.ProductInput {
	return mdapp.ProductInput{
		Name:            r.Name,
		Kind:            masterdata.ProductKind(r.Kind),
		SalesPrice:      r.SalesPrice,
		PurchasePrice:   r.PurchasePrice,
		SaleTaxRate:     r.SaleTaxRate,
		PurchaseTaxRate: r.PurchaseTaxRate,
		HSNCode:         r.HSNCode,
		Category:        r.Category,
	}
}

// CreateProduct handles POST /products
func (h *MasterDataHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.service.CreateProduct(req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetProduct handles GET /products/:id
func (h *MasterDataHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UpdateProduct handles PUT /products/:id
func (h *MasterDataHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.service.UpdateProduct(id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// DeleteProduct handles DELETE /products/:id
func (h *MasterDataHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	if err := h.service.DeleteProduct(id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListProducts handles GET /products
func (h *MasterDataHandler) ListProducts(c *gin.Context) {
	products := h.service.ListProducts(c.Query("search"))
	h.List(c, products, len(products))
}

// TaxRequest is the request body for creating or updating a tax
type TaxRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=100"`
	Method    string          `json:"method" binding:"required,oneof=percentage fixed"`
	Rate      decimal.Decimal `json:"rate"`
	AppliesTo string          `json:"applies_to" binding:"required,oneof=sales purchase both"`
}

func (r *TaxRequest) toInput() mdapp.TaxInput {
	return mdapp.TaxInput{
		Name:      r.Name,
		Method:    masterdata.TaxMethod(r.Method),
		Rate:      r.Rate,
		AppliesTo: masterdata.TaxScope(r.AppliesTo),
	}
}

// CreateTax handles POST /taxes
func (h *MasterDataHandler) CreateTax(c *gin.Context) {
	var req TaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tax, err := h.service.CreateTax(req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tax)
}

// GetTax handles GET /taxes/:id
func (h *MasterDataHandler) GetTax(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid tax ID")
		return
	}

	tax, err := h.service.GetTax(id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tax)
}

// UpdateTax handles PUT /taxes/:id
func (h *MasterDataHandler) UpdateTax(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid tax ID")
		return
	}
	var req TaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tax, err := h.service.UpdateTax(id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tax)
}

// DeleteTax handles DELETE /taxes/:id
func (h *MasterDataHandler) DeleteTax(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid tax ID")
		return
	}
	if err := h.service.DeleteTax(id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListTaxes handles GET /taxes
func (h *MasterDataHandler) ListTaxes(c *gin.Context) {
	taxes := h.service.ListTaxes(c.Query("search"))
	h.List(c, taxes, len(taxes))
}

// CreateAccountRequest is the request body for creating an account
type CreateAccountRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=200"`
	Type     string  `json:"type" binding:"required,oneof=asset liability income expense equity"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// UpdateAccountRequest is the request body for updating an account.
// The type is immutable and therefore absent.
type UpdateAccountRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=200"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

func parseParentID(raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// CreateAccount handles POST /accounts
func (h *MasterDataHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	parentID, err := parseParentID(req.ParentID)
	if err != nil {
		h.BadRequest(c, "Invalid parent account ID")
		return
	}

	account, err := h.service.CreateAccount(mdapp.AccountInput{
		Name:     req.Name,
		Type:     masterdata.AccountType(req.Type),
		ParentID: parentID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// GetAccount handles GET /accounts/:id
func (h *MasterDataHandler) GetAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.service.GetAccount(id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// UpdateAccount handles PUT /accounts/:id
func (h *MasterDataHandler) UpdateAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	parentID, err := parseParentID(req.ParentID)
	if err != nil {
		h.BadRequest(c, "Invalid parent account ID")
		return
	}

	account, err := h.service.UpdateAccount(id, req.Name, parentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// DeleteAccount handles DELETE /accounts/:id
func (h *MasterDataHandler) DeleteAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	if err := h.service.DeleteAccount(id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListAccounts handles GET /accounts
func (h *MasterDataHandler) ListAccounts(c *gin.Context) {
	accounts := h.service.ListAccounts(c.Query("search"))
	h.List(c, accounts, len(accounts))
}
