package handler

import (
	"github.com/fabioverbena/Event-Manager/internal/application/service"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/request"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
	documents       *service.DocumentService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService, documents *service.DocumentService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, documents: documents}
}

// List handles listing active customers
func (h *CustomerHandler) List(c *gin.Context) {
	result, err := h.customerService.ListCustomers(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Clienti recuperati", result)
}

// Search handles the typeahead used by the order form
func (h *CustomerHandler) Search(c *gin.Context) {
	customers, err := h.customerService.SearchCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Clienti trovati", customers)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:       req.RagioneSociale,
		Referent:   req.NomeReferente,
		Email:      req.Email,
		Phone:      req.Telefono,
		Mobile:     req.Cellulare,
		VATNumber:  req.PartitaIVA,
		TaxCode:    req.CodiceFiscale,
		Address:    req.Indirizzo,
		City:       req.Citta,
		PostalCode: req.CAP,
		Province:   req.Provincia,
		Notes:      req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cliente creato", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cliente recuperato", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req request.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		ID:         id,
		Name:       req.RagioneSociale,
		Referent:   req.NomeReferente,
		Email:      req.Email,
		Phone:      req.Telefono,
		Mobile:     req.Cellulare,
		VATNumber:  req.PartitaIVA,
		TaxCode:    req.CodiceFiscale,
		Address:    req.Indirizzo,
		City:       req.Citta,
		PostalCode: req.CAP,
		Province:   req.Provincia,
		Notes:      req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cliente aggiornato", customer)
}

// Delete handles deactivating a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Import handles a CSV upload in the multipart field "file"
func (h *CustomerHandler) Import(c *gin.Context) {
	file, ok := uploadedFile(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.customerService.ImportCustomers(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Importazione completata", result)
}

// Template handles downloading the import template, as CSV or ?format=xlsx
func (h *CustomerHandler) Template(c *gin.Context) {
	f, err := h.documents.ImportTemplate("clienti", c.Query("format") == "xlsx")
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, f)
}
