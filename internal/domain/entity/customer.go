package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a customer met at a fair or imported from a CSV list
type Customer struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ExternalCode *string   `gorm:"size:100;column:codice_cliente_esterno" json:"codice_cliente_esterno,omitempty"`
	Name         string    `gorm:"size:255;not null;index;column:ragione_sociale" json:"ragione_sociale"`
	Referent     *string   `gorm:"size:255;column:nome_referente" json:"nome_referente,omitempty"`
	Email        *string   `gorm:"size:255" json:"email,omitempty"`
	Phone        *string   `gorm:"size:50;column:telefono" json:"telefono,omitempty"`
	Mobile       *string   `gorm:"size:50;column:cellulare" json:"cellulare,omitempty"`
	VATNumber    *string   `gorm:"size:11;column:partita_iva" json:"partita_iva,omitempty"`
	TaxCode      *string   `gorm:"size:16;column:codice_fiscale" json:"codice_fiscale,omitempty"`
	Address      *string   `gorm:"type:text;column:indirizzo" json:"indirizzo,omitempty"`
	City         *string   `gorm:"size:100;column:citta" json:"citta,omitempty"`
	PostalCode   *string   `gorm:"size:10;column:cap" json:"cap,omitempty"`
	Province     *string   `gorm:"size:2;column:provincia" json:"provincia,omitempty"`
	Notes        *string   `gorm:"type:text;column:note" json:"note,omitempty"`
	Active       bool      `gorm:"not null;default:true;index;column:attivo" json:"attivo"`
	Imported     bool      `gorm:"not null;default:false;column:importato" json:"importato"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "clienti"
}
