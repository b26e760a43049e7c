package service

import (
	"context"
	"strings"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	"github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/metrics"
	"github.com/fabioverbena/Event-Manager/pkg/apperror"
	"github.com/fabioverbena/Event-Manager/pkg/csvimport"
	"github.com/fabioverbena/Event-Manager/pkg/document"
	"github.com/fabioverbena/Event-Manager/pkg/format"
	"github.com/fabioverbena/Event-Manager/pkg/leasing"
	"github.com/fabioverbena/Event-Manager/pkg/spreadsheet"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

// File is a generated download
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// DocumentOptions configures DocumentService
type DocumentOptions struct {
	DefaultCopies int
	MaxCopies     int
	// LeasingCodes maps product codes to leasing model keys
	LeasingCodes map[string]string
}

// DocumentService renders PDFs and spreadsheets
type DocumentService struct {
	orders    *OrderService
	orderRepo repository.OrderRepository
	products  repository.ProductRepository
	settings  *SettingsService
	renderer  *document.Renderer
	terms     *leasing.TermsBook
	codes     map[string]leasing.Model
	opts      DocumentOptions
}

// NewDocumentService creates a new document service
func NewDocumentService(
	orders *OrderService,
	orderRepo repository.OrderRepository,
	products repository.ProductRepository,
	settings *SettingsService,
	renderer *document.Renderer,
	terms *leasing.TermsBook,
	opts DocumentOptions,
) *DocumentService {
	if opts.DefaultCopies < 1 {
		opts.DefaultCopies = 1
	}
	if opts.MaxCopies < opts.DefaultCopies {
		opts.MaxCopies = max(opts.DefaultCopies, 10)
	}
	if terms == nil {
		terms = leasing.NewTermsBook(nil)
	}

	codes := make(map[string]leasing.Model, len(opts.LeasingCodes))
	for code, key := range opts.LeasingCodes {
		m := leasing.ParseModel(key)
		if m == leasing.Unknown {
			log.Warn().Str("code", code).Str("model", key).Msg("ignoring unknown leasing model mapping")
			continue
		}
		codes[strings.ToUpper(strings.TrimSpace(code))] = m
	}

	return &DocumentService{
		orders:    orders,
		orderRepo: orderRepo,
		products:  products,
		settings:  settings,
		renderer:  renderer,
		terms:     terms,
		codes:     codes,
		opts:      opts,
	}
}

// Copies clamps a requested copy count into [1, MaxCopies]. Zero means the
// configured default.
func (s *DocumentService) Copies(n int) int {
	if n <= 0 {
		return s.opts.DefaultCopies
	}
	return min(n, s.opts.MaxCopies)
}

// OrderPDF renders an order confirmation, or a quote when quote is true.
// Quotes for display units sold through leasing carry the leasing table and
// terms instead of the line table.
func (s *DocumentService) OrderPDF(ctx context.Context, id uuid.UUID, quote bool, copies int) (*File, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	copies = s.Copies(copies)

	doc := toDocumentOrder(order)
	layout := document.LayoutOrder
	if quote {
		layout = document.LayoutQuote
		if order.HasDisplayUnits && order.SaleMode != nil && *order.SaleMode == enum.SaleModeLeasing {
			if row := s.leasingRow(order); row != nil {
				doc.Leasing = row
				layout = document.LayoutQuoteLeasing
			} else {
				log.Warn().Int("numero_ordine", order.Number).Msg("leasing quote without display unit lines, using plain quote")
			}
		}
	}

	content, err := s.renderer.OrderPDF(layout, doc, copies)
	if err != nil {
		return nil, err
	}
	metrics.DocumentsRenderedTotal.WithLabelValues(layout.String()).Inc()

	customer := ""
	if order.Customer != nil {
		customer = order.Customer.Name
	}
	return &File{
		Name:        document.FileName(quote, order.Number, customer, copies),
		ContentType: ContentTypePDF,
		Content:     content,
	}, nil
}

// leasingRow picks the display unit line that represents the leased model.
// The discount is the order percentage when one was given, else the fixed
// leasing rate.
func (s *DocumentService) leasingRow(order *entity.Order) *document.LeasingRow {
	var display []entity.OrderLine
	for _, l := range order.Lines {
		if l.Product != nil && l.Product.IsDisplayUnit() {
			display = append(display, l)
		}
	}
	if len(display) == 0 {
		return nil
	}

	names := make([]string, len(display))
	candidates := make([]leasing.Candidate, len(display))
	for i, l := range display {
		names[i] = l.Product.Name
		candidates[i] = leasing.Candidate{Code: l.Product.Code, Name: l.Product.Name}
	}

	chosen := display[0]
	_, model := leasing.Detect(names)
	if model == leasing.Unknown {
		log.Warn().Int("numero_ordine", order.Number).Msg("no leasing model recognised, using default terms")
	} else if c, ok := leasing.Resolve(model, candidates, s.codes, warnAmbiguous(order.Number)); ok {
		for _, l := range display {
			if l.Product.Code == c.Code {
				chosen = l
				break
			}
		}
	}

	discount := leasing.DiscountRate
	if pct := order.DiscountPctPtr(); pct != nil && pct.IsPositive() {
		discount = *pct
	}
	return &document.LeasingRow{
		Code:        chosen.Product.Code,
		Model:       chosen.Product.Name,
		Quantity:    chosen.Quantity,
		UnitPrice:   chosen.UnitPrice,
		DiscountPct: discount,
		Subtotal:    leasing.DiscountedPrice(chosen.UnitPrice.Mul(chosen.Quantity), discount),
		Terms:       s.terms.Terms(model),
	}
}

func warnAmbiguous(number int) leasing.AmbiguityFunc {
	return func(m leasing.Model, chosen leasing.Candidate, matched int) {
		log.Warn().
			Int("numero_ordine", number).
			Str("model", m.Key()).
			Str("chosen", chosen.Code).
			Int("candidates", matched).
			Msg("ambiguous leasing model match")
	}
}

func toDocumentOrder(o *entity.Order) *document.Order {
	doc := &document.Order{
		Number:          o.Number,
		Event:           o.EventName,
		Date:            o.OrderDate,
		Status:          o.Status.Label(),
		HasDisplayUnits: o.HasDisplayUnits,
		Subtotal:        o.Subtotal,
		DiscountAmount:  o.DiscountAmount,
		DiscountPct:     o.DiscountPctPtr(),
		Total:           o.Total,
	}
	if o.SaleMode != nil {
		doc.SaleMode = string(*o.SaleMode)
	}
	if o.Notes != nil {
		doc.Notes = *o.Notes
	}
	if c := o.Customer; c != nil {
		doc.Customer = &document.Customer{
			Name:     c.Name,
			Referent: deref(c.Referent),
			Address:  deref(c.Address),
			CAP:      deref(c.PostalCode),
			City:     deref(c.City),
			Province: deref(c.Province),
			Phone:    deref(c.Phone),
			Mobile:   deref(c.Mobile),
			VAT:      deref(c.VATNumber),
			TaxCode:  deref(c.TaxCode),
		}
	}
	for _, l := range o.Lines {
		line := document.Line{
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		}
		if l.Product != nil {
			line.Code = l.Product.Code
			line.Name = l.Product.Name
			line.Unit = string(l.Product.Unit)
		}
		doc.Lines = append(doc.Lines, line)
	}
	return doc
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BlankFormPDF renders an empty paper order form pre-printed with the
// catalog rows of the form type. leasingModel, allowed only on display unit
// forms, adds the terms box of that model ("default" for the generic text).
func (s *DocumentService) BlankFormPDF(ctx context.Context, tipo string, copies int, leasingModel string) (*File, error) {
	formType, err := enum.ParseFormType(tipo)
	if err != nil {
		return nil, apperror.NewFieldError("tipo", "Tipo modulo non valido")
	}
	copies = s.Copies(copies)

	products, err := s.products.ListByCategoryNames(ctx, formType.CategoryNames())
	if err != nil {
		return nil, err
	}
	event, _, err := s.settings.CurrentEvent(ctx)
	if err != nil {
		return nil, err
	}

	form := &document.BlankForm{Type: formType.String(), Event: event}
	for _, p := range products {
		form.Products = append(form.Products, document.BlankProduct{Code: p.Code, Name: p.Name, Price: p.ListPrice})
	}

	layout := document.LayoutBlankForm
	if key := strings.TrimSpace(leasingModel); key != "" {
		if !formType.AllowsLeasing() {
			return nil, apperror.NewFieldError("leasing", "Il leasing è disponibile solo per gli espositori")
		}
		model := leasing.ParseModel(key)
		if model == leasing.Unknown && !strings.EqualFold(key, leasing.Unknown.Key()) {
			return nil, apperror.NewFieldError("leasing", "Modello leasing non valido")
		}
		layout = document.LayoutBlankFormLeasing
		form.LeasingTerms = s.terms.Terms(model)
		if model != leasing.Unknown {
			form.LeasingModel = strings.ToUpper(model.Key())
		}
	}

	content, err := s.renderer.BlankFormPDF(layout, form, copies)
	if err != nil {
		return nil, err
	}
	metrics.DocumentsRenderedTotal.WithLabelValues(layout.String()).Inc()

	return &File{
		Name:        document.BlankFormFileName(formType.String(), copies),
		ContentType: ContentTypePDF,
		Content:     content,
	}, nil
}

// LeasingMatch explains how a product name maps to a leasing model
type LeasingMatch struct {
	Name       string `json:"nome"`
	Normalized string `json:"normalizzato"`
	Model      string `json:"modello"`
	Terms      string `json:"condizioni"`
}

// MatchLeasing runs the leasing model matcher on a product name
func (s *DocumentService) MatchLeasing(name string) *LeasingMatch {
	m := leasing.Match(name)
	return &LeasingMatch{
		Name:       name,
		Normalized: leasing.Normalize(name),
		Model:      m.Key(),
		Terms:      s.terms.Terms(m),
	}
}

var orderExportHeader = []string{
	"Numero", "Data", "Cliente", "Evento", "Stato", "Espositori", "Tipo Vendita",
	"Subtotale", "Sconto %", "Sconto €", "Importo Sconto", "Totale", "Note",
}

// ExportOrdersXLSX writes every order matching filter to a spreadsheet.
// Pagination in filter is ignored.
func (s *DocumentService) ExportOrdersXLSX(ctx context.Context, filter *repository.OrderFilterParams) (*File, error) {
	all := *filter
	all.Pagination = nil
	orders, _, err := s.orderRepo.List(ctx, &all)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(orders))
	for _, o := range orders {
		customer := ""
		if o.Customer != nil {
			customer = o.Customer.Name
		}
		display := "No"
		if o.HasDisplayUnits {
			display = "Sì"
		}
		mode := ""
		if o.SaleMode != nil {
			mode = o.SaleMode.Label()
		}
		rows = append(rows, []any{
			o.Number,
			format.Date(o.OrderDate),
			customer,
			o.EventName,
			o.Status.Label(),
			display,
			mode,
			o.Subtotal.InexactFloat64(),
			nullable(o.DiscountPct.Valid, o.DiscountPct.Decimal.InexactFloat64()),
			nullable(o.DiscountValue.Valid, o.DiscountValue.Decimal.InexactFloat64()),
			o.DiscountAmount.InexactFloat64(),
			o.Total.InexactFloat64(),
			deref(o.Notes),
		})
	}

	content, err := spreadsheet.Build(spreadsheet.Sheet{
		Name:   "Ordini",
		Header: orderExportHeader,
		Rows:   rows,
		Widths: []float64{10, 12, 35, 25, 12, 11, 13, 12, 10, 10, 14, 12, 40},
	})
	if err != nil {
		return nil, err
	}
	return &File{Name: "Ordini.xlsx", ContentType: ContentTypeXLSX, Content: content}, nil
}

func nullable(valid bool, v float64) any {
	if !valid {
		return ""
	}
	return v
}

// ImportTemplate returns the import template for "clienti" or "prodotti",
// as CSV or, when xlsx is true, as a spreadsheet with the same columns.
func (s *DocumentService) ImportTemplate(entityName string, xlsx bool) (*File, error) {
	var (
		columns []csvimport.Column
		example []string
		name    string
	)
	switch entityName {
	case "clienti":
		columns, example, name = CustomerImportColumns, customerTemplateExample, "template_clienti"
	case "prodotti":
		columns, example, name = ProductImportColumns, productTemplateExample, "template_prodotti"
	default:
		return nil, apperror.NewBadRequestError("Template non disponibile: " + entityName)
	}

	if !xlsx {
		return &File{Name: name + ".csv", ContentType: ContentTypeCSV, Content: csvimport.Template(columns, example)}, nil
	}

	header := make([]string, len(columns))
	widths := make([]float64, len(columns))
	for i, c := range columns {
		header[i] = c.Key
		widths[i] = float64(max(len(c.Key), len(example[i]))) + 2
	}
	row := make([]any, len(example))
	for i, v := range example {
		row[i] = v
	}
	content, err := spreadsheet.Build(spreadsheet.Sheet{
		Name:   "Template",
		Header: header,
		Rows:   [][]any{row},
		Widths: widths,
	})
	if err != nil {
		return nil, err
	}
	return &File{Name: name + ".xlsx", ContentType: ContentTypeXLSX, Content: content}, nil
}
