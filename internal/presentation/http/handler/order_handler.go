package handler

import (
	"time"

	"github.com/fabioverbena/Event-Manager/internal/application/service"
	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	"github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/request"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/response"
	"github.com/fabioverbena/Event-Manager/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	documents    *service.DocumentService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, documents *service.DocumentService) *OrderHandler {
	return &OrderHandler{orderService: orderService, documents: documents}
}

// filterParams reads the list filters shared by List and Export. Malformed
// values are ignored.
func filterParams(c *gin.Context) *repository.OrderFilterParams {
	params := &repository.OrderFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
		Event:      c.Query("evento"),
	}

	if s := c.Query("stato"); s != "" {
		if status, err := enum.ParseOrderStatus(s); err == nil {
			params.Status = &status
		}
	}

	if customerIDStr := c.Query("cliente_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse(dateLayout, startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse(dateLayout, endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	return params
}

// List handles listing orders, newest first
func (h *OrderHandler) List(c *gin.Context) {
	result, err := h.orderService.ListOrders(c.Request.Context(), filterParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Ordini recuperati", result)
}

func lineInputs(lines []request.OrderLineRequest) []service.OrderLineInput {
	out := make([]service.OrderLineInput, len(lines))
	for i, l := range lines {
		out[i] = service.OrderLineInput{
			ProductID: l.ProdottoID,
			Quantity:  l.Quantita,
			UnitPrice: l.PrezzoUnitario,
			Notes:     l.NoteRiga,
		}
	}
	return out
}

func saveInput(c *gin.Context) (*service.SaveOrderInput, bool) {
	var req request.SaveOrderRequest
	if !bindJSON(c, &req) {
		return nil, false
	}

	input := &service.SaveOrderInput{
		CustomerID:    req.ClienteID,
		EventName:     req.NomeEvento,
		Status:        req.Stato,
		SaleMode:      req.TipoVenditaEspositori,
		DiscountPct:   req.ScontoPercentuale,
		DiscountValue: req.ScontoValore,
		Notes:         req.Note,
		CreatedBy:     req.CreatedBy,
		Lines:         lineInputs(req.Righe),
	}
	if req.DataOrdine != "" {
		date, err := time.Parse(dateLayout, req.DataOrdine)
		if err != nil {
			response.Error(c, apperror.NewFieldError("data_ordine", "Data non valida (AAAA-MM-GG)"))
			return nil, false
		}
		input.OrderDate = &date
	}
	return input, true
}

// Create handles creating an order with its lines
func (h *OrderHandler) Create(c *gin.Context) {
	input, ok := saveInput(c)
	if !ok {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Ordine creato", order)
}

// Update handles replacing an order and its lines
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := saveInput(c)
	if !ok {
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ordine aggiornato", order)
}

// Preview handles computing totals for an unsaved cart
func (h *OrderHandler) Preview(c *gin.Context) {
	var req request.PreviewOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	preview, err := h.orderService.PreviewOrder(c.Request.Context(), lineInputs(req.Righe), req.ScontoPercentuale, req.ScontoValore)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Totali calcolati", preview)
}

// Get handles getting a single order with customer and lines
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ordine recuperato", order)
}

// Delete handles deleting an order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Events handles listing the event names used by orders
func (h *OrderHandler) Events(c *gin.Context) {
	events, err := h.orderService.Events(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Eventi recuperati", events)
}

type transitionView struct {
	Stato     enum.OrderStatus `json:"stato"`
	Etichetta string           `json:"etichetta"`
}

// Transitions handles listing the states an order can move to
func (h *OrderHandler) Transitions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	next, err := h.orderService.Transitions(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	views := make([]transitionView, len(next))
	for i, s := range next {
		views[i] = transitionView{Stato: s, Etichetta: s.Label()}
	}
	response.OK(c, "Transizioni disponibili", views)
}

// UpdateStatus handles a status transition
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req request.ChangeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.ChangeStatus(c.Request.Context(), id, req.Stato)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stato aggiornato", order)
}

// PDF handles rendering an order confirmation or, with ?tipo=preventivo, a
// quote. ?copie repeats the pages.
func (h *OrderHandler) PDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var quote bool
	switch c.DefaultQuery("tipo", "ordine") {
	case "ordine":
	case "preventivo":
		quote = true
	default:
		response.Error(c, apperror.NewFieldError("tipo", "Tipo documento non valido"))
		return
	}

	f, err := h.documents.OrderPDF(c.Request.Context(), id, quote, queryInt(c, "copie"))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, f)
}

// Export handles downloading the filtered order list as a spreadsheet
func (h *OrderHandler) Export(c *gin.Context) {
	f, err := h.documents.ExportOrdersXLSX(c.Request.Context(), filterParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, f)
}
