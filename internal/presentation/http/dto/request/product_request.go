package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a product creation request. A blank code
// is generated from the name.
type CreateProductRequest struct {
	CategoriaID   uuid.UUID       `json:"categoria_id"`
	Codice        string          `json:"codice_prodotto" binding:"omitempty,max=50"`
	Nome          string          `json:"nome" binding:"required,max=255"`
	Descrizione   *string         `json:"descrizione"`
	PrezzoListino decimal.Decimal `json:"prezzo_listino" binding:"gte=0,lte=999999.99"`
	UnitaMisura   string          `json:"unita_misura" binding:"omitempty,unita"`
	Note          *string         `json:"note"`
	ImmagineURL   *string         `json:"immagine_url" binding:"omitempty,max=500"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoriaID   *uuid.UUID       `json:"categoria_id"`
	Codice        *string          `json:"codice_prodotto" binding:"omitempty,max=50"`
	Nome          *string          `json:"nome" binding:"omitempty,max=255"`
	Descrizione   *string          `json:"descrizione"`
	PrezzoListino *decimal.Decimal `json:"prezzo_listino" binding:"omitempty,gte=0,lte=999999.99"`
	UnitaMisura   *string          `json:"unita_misura" binding:"omitempty,unita"`
	Disponibile   *bool            `json:"disponibile"`
	Note          *string          `json:"note"`
	ImmagineURL   *string          `json:"immagine_url" binding:"omitempty,max=500"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
}

// CreateCategoryRequest represents a category creation request. Children
// inherit tipo_ordine from their parent.
type CreateCategoryRequest struct {
	Nome                  string     `json:"nome" binding:"required,max=255"`
	ParentID              *uuid.UUID `json:"parent_id"`
	TipoOrdine            string     `json:"tipo_ordine"`
	OrdineVisualizzazione int        `json:"ordine_visualizzazione" binding:"gte=0"`
	Descrizione           *string    `json:"descrizione"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Nome                  *string `json:"nome" binding:"omitempty,max=255"`
	OrdineVisualizzazione *int    `json:"ordine_visualizzazione" binding:"omitempty,gte=0"`
	Descrizione           *string `json:"descrizione"`
}
