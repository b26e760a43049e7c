package entity

import (
	"time"

	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order represents an order or quote taken at a fair. Financial fields are
// always recomputed from the lines on save.
type Order struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Number          int              `gorm:"not null;uniqueIndex;column:numero_ordine" json:"numero_ordine"`
	CustomerID      uuid.UUID        `gorm:"type:uuid;not null;index;column:cliente_id" json:"cliente_id"`
	EventName       string           `gorm:"size:255;index;column:nome_evento" json:"nome_evento"`
	OrderDate       time.Time        `gorm:"type:date;not null;index;column:data_ordine" json:"data_ordine"`
	Status          enum.OrderStatus `gorm:"size:20;not null;default:'bozza';index;column:stato" json:"stato"`
	HasDisplayUnits bool             `gorm:"not null;default:false;column:ha_espositori" json:"ha_espositori"`
	HasOtherItems   bool             `gorm:"not null;default:false;column:ha_altri_prodotti" json:"ha_altri_prodotti"`
	// SaleMode is only set when HasDisplayUnits is true
	SaleMode *enum.SaleMode `gorm:"size:20;column:tipo_vendita_espositori" json:"tipo_vendita_espositori"`

	Subtotal decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0;column:subtotale" json:"subtotale"`
	// Exactly one of DiscountPct and DiscountValue is valid when a discount applies.
	DiscountPct    decimal.NullDecimal `gorm:"type:numeric(5,2);column:sconto_percentuale" json:"sconto_percentuale"`
	DiscountValue  decimal.NullDecimal `gorm:"type:numeric(12,2);column:sconto_valore" json:"sconto_valore"`
	DiscountAmount decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0;column:importo_sconto" json:"importo_sconto"`
	Total          decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0;column:totale" json:"totale"`

	Notes     *string   `gorm:"type:text;column:note" json:"note,omitempty"`
	CreatedBy *string   `gorm:"size:255;column:created_by" json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"cliente,omitempty"`
	Lines    []OrderLine `gorm:"foreignKey:OrderID" json:"righe,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "ordini"
}

// DiscountPctPtr returns the percentage discount, or nil in value mode.
func (o *Order) DiscountPctPtr() *decimal.Decimal {
	if !o.DiscountPct.Valid {
		return nil
	}
	v := o.DiscountPct.Decimal
	return &v
}

// DiscountValuePtr returns the absolute discount, or nil in percentage mode.
func (o *Order) DiscountValuePtr() *decimal.Decimal {
	if !o.DiscountValue.Valid {
		return nil
	}
	v := o.DiscountValue.Decimal
	return &v
}

// OrderLine represents one product row of an order
type OrderLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index;column:ordine_id" json:"ordine_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index;column:prodotto_id" json:"prodotto_id"`
	Quantity  decimal.Decimal `gorm:"type:numeric(10,2);not null;column:quantita" json:"quantita"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;column:prezzo_unitario" json:"prezzo_unitario"`
	// Subtotal is Quantity x UnitPrice, recomputed on every save
	Subtotal decimal.Decimal `gorm:"type:numeric(12,2);not null;column:subtotale_riga" json:"subtotale_riga"`
	Notes    *string         `gorm:"type:text;column:note_riga" json:"note_riga,omitempty"`
	Position int             `gorm:"not null;default:0;column:ordine_riga" json:"ordine_riga"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"prodotto,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order line
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "righe_ordine"
}
