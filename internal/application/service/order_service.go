package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	"github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/metrics"
	"github.com/fabioverbena/Event-Manager/pkg/apperror"
	"github.com/fabioverbena/Event-Manager/pkg/pagination"
	"github.com/fabioverbena/Event-Manager/pkg/pricing"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// StatsInvalidator drops cached aggregates after orders change
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

// OrderService handles order-related operations
type OrderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	settings     *SettingsService
	stats        StatsInvalidator
	now          func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	settings *SettingsService,
	stats StatsInvalidator,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		settings:     settings,
		stats:        stats,
		now:          time.Now,
	}
}

// OrderLineInput represents a line in an order. A nil UnitPrice takes the
// product list price.
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
	Notes     *string
}

// SaveOrderInput is the order form. Totals are never taken from the client.
// When both discount fields are set the percentage wins.
type SaveOrderInput struct {
	CustomerID    uuid.UUID
	EventName     string
	OrderDate     *time.Time
	Status        *enum.OrderStatus
	SaleMode      *enum.SaleMode
	DiscountPct   *decimal.Decimal
	DiscountValue *decimal.Decimal
	Notes         *string
	CreatedBy     *string
	Lines         []OrderLineInput
}

// CreateOrder creates an order with its lines
func (s *OrderService) CreateOrder(ctx context.Context, input *SaveOrderInput) (*entity.Order, error) {
	order := &entity.Order{
		Status:    enum.OrderStatusBozza,
		CreatedBy: optional(input.CreatedBy),
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, apperror.NewFieldError("stato", "Stato non valido")
		}
		order.Status = *input.Status
	}
	return s.saveOrderWithLines(ctx, order, input, nil)
}

// UpdateOrder replaces the order header and lines. A status change must be
// an allowed transition.
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, input *SaveOrderInput) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Status != nil && *input.Status != order.Status {
		if !order.Status.CanTransitionTo(*input.Status) {
			return nil, transitionError(order.Status, *input.Status)
		}
		order.Status = *input.Status
	}

	// products already on the order stay allowed once they become unavailable
	existing := make(map[uuid.UUID]struct{}, len(order.Lines))
	for _, l := range order.Lines {
		existing[l.ProductID] = struct{}{}
	}

	// the header is rewritten from input, relations are reloaded after save
	order.Customer = nil
	order.Lines = nil
	return s.saveOrderWithLines(ctx, order, input, existing)
}

// saveOrderWithLines validates the input, recomputes every derived field
// and persists the order and its lines atomically. existing holds the
// products of the order being updated and is nil on create.
func (s *OrderService) saveOrderWithLines(ctx context.Context, order *entity.Order, input *SaveOrderInput, existing map[uuid.UUID]struct{}) (*entity.Order, error) {
	isNew := existing == nil
	if input.CustomerID == uuid.Nil {
		return nil, apperror.NewFieldError("cliente_id", apperror.MsgRequiredField)
	}
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Cliente")
	}

	lineInputs := mergeLines(roundLines(input.Lines))
	if len(lineInputs) == 0 {
		return nil, apperror.NewFieldError("righe", apperror.MsgEmptyCart)
	}

	products, err := s.loadProducts(ctx, lineInputs)
	if err != nil {
		return nil, err
	}

	lines := make([]entity.OrderLine, 0, len(lineInputs))
	priced := make([]pricing.Line, 0, len(lineInputs))
	var fieldErrors []apperror.FieldError
	hasDisplay, hasOther := false, false

	for i, in := range lineInputs {
		product := products[in.ProductID]
		if _, had := existing[product.ID]; !product.Available && !had {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("righe[%d].prodotto_id", i),
				Message: "Prodotto non disponibile: " + product.Name,
			})
		}

		price := product.ListPrice
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		fieldErrors = append(fieldErrors, validateLine(i, in.Quantity, price)...)

		if product.IsDisplayUnit() {
			hasDisplay = true
		} else {
			hasOther = true
		}

		lines = append(lines, entity.OrderLine{
			ProductID: product.ID,
			Quantity:  in.Quantity,
			UnitPrice: price,
			Subtotal:  pricing.LineSubtotal(in.Quantity, price),
			Notes:     optional(in.Notes),
			Position:  i,
		})
		priced = append(priced, pricing.Line{Quantity: in.Quantity, UnitPrice: price})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	discount := pricing.FromFields(roundCents(input.DiscountPct), roundCents(input.DiscountValue))
	totals, err := pricing.Compute(priced, discount)
	if err != nil {
		return nil, discountError(err)
	}

	pct, value := discount.Fields()
	order.CustomerID = customer.ID
	order.Subtotal = totals.Subtotal
	order.DiscountAmount = totals.DiscountAmount
	order.Total = totals.Total
	order.DiscountPct = nullDecimal(pct)
	order.DiscountValue = nullDecimal(value)
	order.HasDisplayUnits = hasDisplay
	order.HasOtherItems = hasOther
	order.Notes = optional(input.Notes)

	order.SaleMode = nil
	if hasDisplay {
		mode := enum.SaleModeDiretto
		if input.SaleMode != nil {
			if !input.SaleMode.IsValid() {
				return nil, apperror.NewFieldError("tipo_vendita_espositori", "Modalità di vendita non valida")
			}
			mode = *input.SaleMode
		}
		order.SaleMode = &mode
	}

	if input.OrderDate != nil {
		order.OrderDate = dateOnly(*input.OrderDate)
	} else if isNew {
		order.OrderDate = dateOnly(s.now())
	}

	order.EventName = strings.TrimSpace(input.EventName)
	if order.EventName == "" && isNew {
		current, ok, err := s.settings.CurrentEvent(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			order.EventName = current
		}
	}
	if order.EventName == "" {
		return nil, apperror.NewFieldError("nome_evento", apperror.MsgRequiredField)
	}

	if err := s.orderRepo.SaveWithLines(ctx, order, lines); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	mode := "update"
	if isNew {
		mode = "create"
	}
	metrics.OrdersSavedTotal.WithLabelValues(mode).Inc()
	s.stats.Invalidate(ctx)
	log.Info().
		Str("order_id", order.ID.String()).
		Int("numero_ordine", order.Number).
		Str("mode", mode).
		Str("totale", order.Total.StringFixed(2)).
		Msg("order saved")

	return s.GetOrder(ctx, order.ID)
}

// loadProducts fetches every referenced product in one query
func (s *OrderService) loadProducts(ctx context.Context, lines []OrderLineInput) (map[uuid.UUID]*entity.Product, error) {
	ids := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Prodotto %s", id))
		}
	}
	return byID, nil
}

// roundLines rounds quantities and explicit prices to the two decimals the
// line columns store, so the persisted subtotal matches quantity times price.
func roundLines(in []OrderLineInput) []OrderLineInput {
	out := make([]OrderLineInput, len(in))
	for i, l := range in {
		l.Quantity = l.Quantity.Round(2)
		l.UnitPrice = roundCents(l.UnitPrice)
		out[i] = l
	}
	return out
}

func roundCents(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := d.Round(2)
	return &r
}

// mergeLines folds repeated products into their first line by summing the
// quantities, as adding the same product twice does in the order form. The
// first explicit price and note win.
func mergeLines(in []OrderLineInput) []OrderLineInput {
	out := make([]OrderLineInput, 0, len(in))
	index := make(map[uuid.UUID]int, len(in))
	for _, l := range in {
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity = out[i].Quantity.Add(l.Quantity)
			if out[i].UnitPrice == nil {
				out[i].UnitPrice = l.UnitPrice
			}
			if optional(out[i].Notes) == nil {
				out[i].Notes = l.Notes
			}
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out
}

func validateLine(i int, qty, price decimal.Decimal) []apperror.FieldError {
	var errs []apperror.FieldError
	if qty.LessThan(entity.Limits.MinQuantity) || qty.GreaterThan(entity.Limits.MaxQuantity) {
		errs = append(errs, apperror.FieldError{
			Field:   fmt.Sprintf("righe[%d].quantita", i),
			Message: "La quantità deve essere compresa tra 0,01 e 9.999,99",
		})
	}
	if price.LessThan(entity.Limits.MinPrice) || price.GreaterThan(entity.Limits.MaxPrice) {
		errs = append(errs, apperror.FieldError{
			Field:   fmt.Sprintf("righe[%d].prezzo_unitario", i),
			Message: "Il prezzo deve essere compreso tra 0 e 999.999,99",
		})
	}
	return errs
}

func discountError(err error) error {
	field := func(name, msg string) error {
		e := apperror.NewFieldError(name, msg)
		e.Message = apperror.MsgDiscountOutOfRange
		return e
	}
	switch {
	case errors.Is(err, pricing.ErrPercentageOutOfRange):
		return field("sconto_percentuale", "Lo sconto percentuale deve essere compreso tra 0 e 100")
	case errors.Is(err, pricing.ErrNegativeDiscount):
		return field("sconto_valore", "Lo sconto non può essere negativo")
	case errors.Is(err, pricing.ErrDiscountExceedsSubtotal):
		return field("sconto_valore", "Lo sconto non può superare il subtotale")
	}
	return err
}

func transitionError(from, to enum.OrderStatus) error {
	if from.IsTerminal() {
		return apperror.ErrInvalidTransition.WithDetail(fmt.Sprintf("l'ordine è %s e non può più cambiare stato", strings.ToLower(from.Label())))
	}
	return apperror.ErrInvalidTransition.WithDetail(fmt.Sprintf("da %s a %s", from.Label(), to.Label()))
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PreviewLine is one line of an order preview
type PreviewLine struct {
	ProductID uuid.UUID       `json:"prodotto_id"`
	Quantity  decimal.Decimal `json:"quantita"`
	UnitPrice decimal.Decimal `json:"prezzo_unitario"`
	Subtotal  decimal.Decimal `json:"subtotale_riga"`
}

// OrderPreview holds the totals the order form shows while editing
type OrderPreview struct {
	pricing.Totals
	Lines []PreviewLine `json:"righe"`
}

// PreviewOrder computes totals without persisting anything. Lines without a
// price take the product list price.
func (s *OrderService) PreviewOrder(ctx context.Context, lines []OrderLineInput, discountPct, discountValue *decimal.Decimal) (*OrderPreview, error) {
	lines = mergeLines(roundLines(lines))

	var missing []OrderLineInput
	for _, l := range lines {
		if l.UnitPrice == nil {
			missing = append(missing, l)
		}
	}
	var products map[uuid.UUID]*entity.Product
	if len(missing) > 0 {
		var err error
		if products, err = s.loadProducts(ctx, missing); err != nil {
			return nil, err
		}
	}

	preview := &OrderPreview{Lines: make([]PreviewLine, 0, len(lines))}
	priced := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		var price decimal.Decimal
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		} else {
			price = products[l.ProductID].ListPrice
		}
		priced = append(priced, pricing.Line{Quantity: l.Quantity, UnitPrice: price})
		preview.Lines = append(preview.Lines, PreviewLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: price,
			Subtotal:  pricing.LineSubtotal(l.Quantity, price),
		})
	}

	totals, err := pricing.Compute(priced, pricing.FromFields(roundCents(discountPct), roundCents(discountValue)))
	if err != nil {
		return nil, discountError(err)
	}
	preview.Totals = totals
	return preview, nil
}

// GetOrder retrieves an order with customer and lines
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Ordine")
	}
	return order, nil
}

// ListOrders lists orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	params.Search = strings.TrimSpace(params.Search)

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ChangeStatus moves an order to another state if the transition is allowed
func (s *OrderService) ChangeStatus(ctx context.Context, id uuid.UUID, to enum.OrderStatus) (*entity.Order, error) {
	if !to.IsValid() {
		return nil, apperror.NewFieldError("stato", "Stato non valido")
	}
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(to) {
		return nil, transitionError(order.Status, to)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}

	metrics.OrderStatusChangesTotal.WithLabelValues(string(to)).Inc()
	s.stats.Invalidate(ctx)
	log.Info().Str("order_id", id.String()).Str("from", string(order.Status)).Str("to", string(to)).Msg("order status changed")

	order.Status = to
	return order, nil
}

// Transitions lists the states the order can move to next
func (s *OrderService) Transitions(ctx context.Context, id uuid.UUID) ([]enum.OrderStatus, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return order.Status.AllowedTransitions(), nil
}

// DeleteOrder removes an order and its lines
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetOrder(ctx, id); err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.stats.Invalidate(ctx)
	return nil
}

// Events lists the event names used by orders, newest first
func (s *OrderService) Events(ctx context.Context) ([]string, error) {
	events, err := s.orderRepo.Events(ctx)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []string{}
	}
	return events, nil
}
