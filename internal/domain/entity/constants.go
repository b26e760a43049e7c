package entity

import (
	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompanyName is the trading name shown in the UI and documents
const CompanyName = "Fior d'Acqua"

// CurrentEventKey is the settings key holding the current fair name
const CurrentEventKey = "evento_corrente"

// Fixed category IDs, seeded at startup so that they match across installs.
var (
	CategoryEspositori    = uuid.MustParse("c1000000-0000-0000-0000-000000000001")
	CategoryNonEspositori = uuid.MustParse("c2000000-0000-0000-0000-000000000002")
	CategoryDiretti       = uuid.MustParse("c1100000-0000-0000-0000-000000000011")
	CategoryLeasing       = uuid.MustParse("c1200000-0000-0000-0000-000000000012")
	CategoryRicambi       = uuid.MustParse("c2100000-0000-0000-0000-000000000021")
	CategoryGemme         = uuid.MustParse("c2200000-0000-0000-0000-000000000022")
	CategoryNido          = uuid.MustParse("c2300000-0000-0000-0000-000000000023")
	CategoryServizi       = uuid.MustParse("c2400000-0000-0000-0000-000000000024")
	CategoryAltro         = uuid.MustParse("c2500000-0000-0000-0000-000000000025")
)

// Limits bounds the numeric inputs of products and orders.
var Limits = struct {
	MinDiscountPct decimal.Decimal
	MaxDiscountPct decimal.Decimal
	MinQuantity    decimal.Decimal
	MaxQuantity    decimal.Decimal
	MinPrice       decimal.Decimal
	MaxPrice       decimal.Decimal
}{
	MinDiscountPct: decimal.Zero,
	MaxDiscountPct: decimal.NewFromInt(100),
	MinQuantity:    decimal.RequireFromString("0.01"),
	MaxQuantity:    decimal.RequireFromString("9999.99"),
	MinPrice:       decimal.Zero,
	MaxPrice:       decimal.RequireFromString("999999.99"),
}

// DefaultCategories is the two-level category tree created on first start.
func DefaultCategories() []Category {
	esp, non := CategoryEspositori, CategoryNonEspositori
	return []Category{
		{ID: esp, Name: "ESPOSITORI", OrderType: enum.OrderTypeEspositori, DisplayOrder: 1, Active: true},
		{ID: non, Name: "NON ESPOSITORI", OrderType: enum.OrderTypeNonEspositori, DisplayOrder: 2, Active: true},
		{ID: CategoryDiretti, Name: "Diretti", ParentID: &esp, OrderType: enum.OrderTypeEspositori, DisplayOrder: 11, Active: true},
		{ID: CategoryLeasing, Name: "Leasing", ParentID: &esp, OrderType: enum.OrderTypeEspositori, DisplayOrder: 12, Active: true},
		{ID: CategoryRicambi, Name: "Ricambi", ParentID: &non, OrderType: enum.OrderTypeNonEspositori, DisplayOrder: 21, Active: true},
		{ID: CategoryGemme, Name: "Gemme", ParentID: &non, OrderType: enum.OrderTypeNonEspositori, DisplayOrder: 22, Active: true},
		{ID: CategoryNido, Name: "Nido", ParentID: &non, OrderType: enum.OrderTypeNonEspositori, DisplayOrder: 23, Active: true},
		{ID: CategoryServizi, Name: "Servizi", ParentID: &non, OrderType: enum.OrderTypeNonEspositori, DisplayOrder: 24, Active: true},
		{ID: CategoryAltro, Name: "Altro", ParentID: &non, OrderType: enum.OrderTypeNonEspositori, DisplayOrder: 25, Active: true},
	}
}
