package service

import (
	"context"
	"io"
	"strings"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/internal/infrastructure/metrics"
	"github.com/fabioverbena/Event-Manager/pkg/apperror"
	"github.com/fabioverbena/Event-Manager/pkg/csvimport"
	"github.com/fabioverbena/Event-Manager/pkg/format"
	"github.com/fabioverbena/Event-Manager/pkg/pagination"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const customerSearchLimit = 20

// CustomerImportColumns is the CSV layout accepted by ImportCustomers
var CustomerImportColumns = []csvimport.Column{
	{Key: "ragione_sociale", Label: "Ragione Sociale", Required: true},
	{Key: "nome_referente", Label: "Nome Referente"},
	{Key: "email", Label: "Email", Validate: format.ValidEmail},
	{Key: "telefono", Label: "Telefono"},
	{Key: "cellulare", Label: "Cellulare"},
	{Key: "partita_iva", Label: "Partita IVA", Validate: format.ValidPartitaIVA},
	{Key: "codice_fiscale", Label: "Codice Fiscale", Validate: format.ValidCodiceFiscale},
	{Key: "indirizzo", Label: "Indirizzo"},
	{Key: "citta", Label: "Città"},
	{Key: "cap", Label: "CAP"},
	{Key: "provincia", Label: "Provincia"},
	{Key: "note", Label: "Note"},
}

var customerTemplateExample = []string{
	"Fiori Rossi Srl", "Mario Rossi", "info@fiorirossi.it", "0541 123456", "333 1234567",
	"01234567890", "RSSMRA80A01H294U", "Via Roma 1", "Rimini", "47921", "RN", "Cliente fiera 2024",
}

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name       string
	Referent   *string
	Email      *string
	Phone      *string
	Mobile     *string
	VATNumber  *string
	TaxCode    *string
	Address    *string
	City       *string
	PostalCode *string
	Province   *string
	Notes      *string
	Imported   bool
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	customer := &entity.Customer{
		Name:       strings.TrimSpace(input.Name),
		Referent:   optional(input.Referent),
		Email:      optional(input.Email),
		Phone:      optional(input.Phone),
		Mobile:     optional(input.Mobile),
		VATNumber:  optional(input.VATNumber),
		TaxCode:    upper(optional(input.TaxCode)),
		Address:    optional(input.Address),
		City:       optional(input.City),
		PostalCode: optional(input.PostalCode),
		Province:   upper(optional(input.Province)),
		Notes:      optional(input.Notes),
		Active:     true,
		Imported:   input.Imported,
	}

	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Cliente")
	}
	return customer, nil
}

// ListCustomers lists active customers ordered by name
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()
	customers, total, err := s.customerRepo.List(ctx, params, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// SearchCustomers backs the customer autocomplete
func (s *CustomerService) SearchCustomers(ctx context.Context, term string) ([]entity.Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []entity.Customer{}, nil
	}
	return s.customerRepo.Search(ctx, term, customerSearchLimit)
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID         uuid.UUID
	Name       *string
	Referent   *string
	Email      *string
	Phone      *string
	Mobile     *string
	VATNumber  *string
	TaxCode    *string
	Address    *string
	City       *string
	PostalCode *string
	Province   *string
	Notes      *string
}

// UpdateCustomer updates a customer. Nil fields are left as they are; blank
// strings clear the field.
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Referent != nil {
		customer.Referent = optional(input.Referent)
	}
	if input.Email != nil {
		customer.Email = optional(input.Email)
	}
	if input.Phone != nil {
		customer.Phone = optional(input.Phone)
	}
	if input.Mobile != nil {
		customer.Mobile = optional(input.Mobile)
	}
	if input.VATNumber != nil {
		customer.VATNumber = optional(input.VATNumber)
	}
	if input.TaxCode != nil {
		customer.TaxCode = upper(optional(input.TaxCode))
	}
	if input.Address != nil {
		customer.Address = optional(input.Address)
	}
	if input.City != nil {
		customer.City = optional(input.City)
	}
	if input.PostalCode != nil {
		customer.PostalCode = optional(input.PostalCode)
	}
	if input.Province != nil {
		customer.Province = upper(optional(input.Province))
	}
	if input.Notes != nil {
		customer.Notes = optional(input.Notes)
	}

	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer soft-deletes a customer. Its orders keep referencing it.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Deactivate(ctx, id)
}

// ImportCustomers creates one customer per valid CSV row. Rows failing
// parsing or validation are reported and skipped.
func (s *CustomerService) ImportCustomers(ctx context.Context, r io.Reader) (*ImportResult, error) {
	parsed, err := csvimport.Parse(r, CustomerImportColumns)
	if err != nil {
		return nil, parseError(err)
	}

	errs := append([]string{}, parsed.Errors...)
	imported := 0
	for _, row := range parsed.Rows {
		_, err := s.CreateCustomer(ctx, &CreateCustomerInput{
			Name:       row.Get("ragione_sociale"),
			Referent:   optionalValue(row.Get("nome_referente")),
			Email:      optionalValue(row.Get("email")),
			Phone:      optionalValue(row.Get("telefono")),
			Mobile:     optionalValue(row.Get("cellulare")),
			VATNumber:  optionalValue(row.Get("partita_iva")),
			TaxCode:    optionalValue(row.Get("codice_fiscale")),
			Address:    optionalValue(row.Get("indirizzo")),
			City:       optionalValue(row.Get("citta")),
			PostalCode: optionalValue(row.Get("cap")),
			Province:   optionalValue(row.Get("provincia")),
			Notes:      optionalValue(row.Get("note")),
			Imported:   true,
		})
		if err != nil {
			errs = append(errs, rowError(row.Line, err))
			continue
		}
		imported++
	}

	metrics.CSVRowsImportedTotal.WithLabelValues("clienti", "imported").Add(float64(imported))
	metrics.CSVRowsImportedTotal.WithLabelValues("clienti", "rejected").Add(float64(len(errs)))
	log.Info().Int("imported", imported).Int("rejected", len(errs)).Msg("customer import completed")

	return newImportResult(imported, errs, CustomerImportColumns), nil
}

func validateCustomer(c *entity.Customer) error {
	var fieldErrors []apperror.FieldError
	if c.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "ragione_sociale", Message: apperror.MsgRequiredField})
	}
	if c.Email != nil && !format.ValidEmail(*c.Email) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "email", Message: apperror.MsgInvalidEmail})
	}
	if c.VATNumber != nil && !format.ValidPartitaIVA(*c.VATNumber) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "partita_iva", Message: apperror.MsgInvalidPartitaIVA})
	}
	if c.TaxCode != nil && !format.ValidCodiceFiscale(*c.TaxCode) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "codice_fiscale", Message: apperror.MsgInvalidCodFiscale})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
