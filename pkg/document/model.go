package document

import (
	"time"

	"github.com/shopspring/decimal"
)

// Layout names the document variants the renderer can produce.
type Layout int

const (
	LayoutOrder Layout = iota
	LayoutQuote
	LayoutQuoteLeasing
	LayoutBlankForm
	LayoutBlankFormLeasing
)

func (l Layout) String() string {
	switch l {
	case LayoutOrder:
		return "order"
	case LayoutQuote:
		return "quote"
	case LayoutQuoteLeasing:
		return "quote_leasing"
	case LayoutBlankForm:
		return "blank_form"
	case LayoutBlankFormLeasing:
		return "blank_form_leasing"
	}
	return "unknown"
}

// IsBlankForm reports whether the layout renders an empty paper form.
func (l Layout) IsBlankForm() bool {
	return l == LayoutBlankForm || l == LayoutBlankFormLeasing
}

// Company is the identity printed in headers and footers.
type Company struct {
	Brand     string
	Tagline   string
	Website   string
	LegalName string
	Address   string
	Phones    string
	Emails    string
	IBAN      string
	// FormTagline is the short subtitle used on blank forms.
	FormTagline string
}

// DefaultCompany is the identity used when no override is configured.
var DefaultCompany = Company{
	Brand:       "FIOR D'ACQUA",
	Tagline:     "Espositori Refrigerati per Fiori Recisi",
	Website:     "www.fiordacqua.com",
	LegalName:   "Fior di Verbena di Zanotti Leonardo",
	Address:     "Via Cà dei Lunghi, 54 - Borgo Maggiore 47894 - San Marino",
	Phones:      "Tel: 0549 907005 - Cell: 373 7170588",
	Emails:      "Email: info@fiordacqua.com - fiordacqua@gmail.com",
	IBAN:        "IBAN: SM 63 L 08540 09800 000060191115",
	FormTagline: "Fior d'Acqua - Espositori Refrigerati",
}

// Customer is the customer block of an order document. Empty fields are
// not printed.
type Customer struct {
	Name     string
	Referent string
	Address  string
	CAP      string
	City     string
	Province string
	Phone    string
	Mobile   string
	VAT      string
	TaxCode  string
}

// Line is one row of the order table.
type Line struct {
	Code      string
	Name      string
	Unit      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// LeasingRow is the single model row printed on leasing quotes.
type LeasingRow struct {
	Code        string
	Model       string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	DiscountPct decimal.Decimal
	// Subtotal is price x quantity less DiscountPct
	Subtotal decimal.Decimal
	Terms    string
}

// Order is everything printed on an order or quote.
type Order struct {
	Number          int
	Event           string
	Date            time.Time
	Status          string
	Customer        *Customer
	HasDisplayUnits bool
	// SaleMode is "diretto", "leasing" or empty.
	SaleMode       string
	Lines          []Line
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	// DiscountPct is set when the discount was given as a percentage.
	DiscountPct *decimal.Decimal
	Total       decimal.Decimal
	Notes       string
	// Leasing is required for LayoutQuoteLeasing.
	Leasing *LeasingRow
}

// BlankProduct is a catalog row pre-printed on a blank form.
type BlankProduct struct {
	Code  string
	Name  string
	Price decimal.Decimal
}

// BlankForm describes an empty paper order form.
type BlankForm struct {
	Type     string
	Event    string
	Products []BlankProduct
	// LeasingTerms is printed in a box on LayoutBlankFormLeasing.
	LeasingTerms string
	LeasingModel string
}
