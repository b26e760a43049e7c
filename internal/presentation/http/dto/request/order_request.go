package request

import (
	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one cart line. A missing price takes the list price.
type OrderLineRequest struct {
	ProdottoID     uuid.UUID        `json:"prodotto_id" binding:"required"`
	Quantita       decimal.Decimal  `json:"quantita" binding:"gt=0,lte=9999.99"`
	PrezzoUnitario *decimal.Decimal `json:"prezzo_unitario" binding:"omitempty,gte=0,lte=999999.99"`
	NoteRiga       *string          `json:"note_riga"`
}

// SaveOrderRequest is the body of order create and update. Totals sent by the
// client are ignored.
type SaveOrderRequest struct {
	ClienteID             uuid.UUID          `json:"cliente_id" binding:"required"`
	NomeEvento            string             `json:"nome_evento" binding:"max=255"`
	DataOrdine            string             `json:"data_ordine"`
	Stato                 *enum.OrderStatus  `json:"stato"`
	TipoVenditaEspositori *enum.SaleMode     `json:"tipo_vendita_espositori"`
	ScontoPercentuale     *decimal.Decimal   `json:"sconto_percentuale"`
	ScontoValore          *decimal.Decimal   `json:"sconto_valore"`
	Note                  *string            `json:"note"`
	CreatedBy             *string            `json:"created_by" binding:"omitempty,max=255"`
	Righe                 []OrderLineRequest `json:"righe" binding:"dive"`
}

// PreviewOrderRequest computes totals for an unsaved cart
type PreviewOrderRequest struct {
	Righe             []OrderLineRequest `json:"righe" binding:"dive"`
	ScontoPercentuale *decimal.Decimal   `json:"sconto_percentuale"`
	ScontoValore      *decimal.Decimal   `json:"sconto_valore"`
}

// ChangeStatusRequest moves an order to another state
type ChangeStatusRequest struct {
	Stato enum.OrderStatus `json:"stato" binding:"required"`
}
