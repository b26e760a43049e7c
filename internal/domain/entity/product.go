package entity

import (
	"time"

	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog item sold at fairs
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index;column:categoria_id" json:"categoria_id"`
	Code         string          `gorm:"size:50;uniqueIndex;not null;column:codice_prodotto" json:"codice_prodotto"`
	OriginalCode *string         `gorm:"size:50;column:codice_prodotto_originale" json:"codice_prodotto_originale,omitempty"`
	Name         string          `gorm:"size:255;not null;column:nome" json:"nome"`
	Description  *string         `gorm:"type:text;column:descrizione" json:"descrizione,omitempty"`
	ListPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0;column:prezzo_listino" json:"prezzo_listino"`
	Unit         enum.Unit       `gorm:"size:10;not null;default:'pz';column:unita_misura" json:"unita_misura"`
	Available    bool            `gorm:"not null;default:true;index;column:disponibile" json:"disponibile"`
	Notes        *string         `gorm:"type:text;column:note" json:"note,omitempty"`
	ImageURL     *string         `gorm:"size:500;column:immagine_url" json:"immagine_url,omitempty"`
	Imported     bool            `gorm:"not null;default:false;column:importato" json:"importato"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"categoria,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "prodotti"
}

// IsDisplayUnit reports whether the product belongs to a display-unit category.
// The category must be loaded.
func (p *Product) IsDisplayUnit() bool {
	return p.Category != nil && p.Category.OrderType == enum.OrderTypeEspositori
}

// Category represents a product category. Categories form a two-level tree
// whose roots split display units from everything else.
type Category struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"size:255;not null;column:nome" json:"nome"`
	ParentID     *uuid.UUID     `gorm:"type:uuid;index;column:parent_id" json:"parent_id,omitempty"`
	OrderType    enum.OrderType `gorm:"size:20;not null;column:tipo_ordine" json:"tipo_ordine"`
	DisplayOrder int            `gorm:"not null;default:0;column:ordine_visualizzazione" json:"ordine_visualizzazione"`
	Description  *string        `gorm:"type:text;column:descrizione" json:"descrizione,omitempty"`
	Active       bool           `gorm:"not null;default:true;column:attivo" json:"attivo"`
	CreatedAt    time.Time      `json:"created_at"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"-"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categorie"
}
