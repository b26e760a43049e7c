package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	RagioneSociale string  `json:"ragione_sociale" binding:"required,max=255"`
	NomeReferente  *string `json:"nome_referente" binding:"omitempty,max=255"`
	Email          *string `json:"email" binding:"omitempty,max=255"`
	Telefono       *string `json:"telefono" binding:"omitempty,max=50"`
	Cellulare      *string `json:"cellulare" binding:"omitempty,max=50"`
	PartitaIVA     *string `json:"partita_iva" binding:"omitempty,piva"`
	CodiceFiscale  *string `json:"codice_fiscale" binding:"omitempty,codfisc"`
	Indirizzo      *string `json:"indirizzo"`
	Citta          *string `json:"citta" binding:"omitempty,max=100"`
	CAP            *string `json:"cap" binding:"omitempty,max=10"`
	Provincia      *string `json:"provincia" binding:"omitempty,provincia"`
	Note           *string `json:"note"`
}

// UpdateCustomerRequest represents a customer update request. Absent fields
// are left unchanged.
type UpdateCustomerRequest struct {
	RagioneSociale *string `json:"ragione_sociale" binding:"omitempty,max=255"`
	NomeReferente  *string `json:"nome_referente" binding:"omitempty,max=255"`
	Email          *string `json:"email" binding:"omitempty,max=255"`
	Telefono       *string `json:"telefono" binding:"omitempty,max=50"`
	Cellulare      *string `json:"cellulare" binding:"omitempty,max=50"`
	PartitaIVA     *string `json:"partita_iva" binding:"omitempty,piva"`
	CodiceFiscale  *string `json:"codice_fiscale" binding:"omitempty,codfisc"`
	Indirizzo      *string `json:"indirizzo"`
	Citta          *string `json:"citta" binding:"omitempty,max=100"`
	CAP            *string `json:"cap" binding:"omitempty,max=10"`
	Provincia      *string `json:"provincia" binding:"omitempty,provincia"`
	Note           *string `json:"note"`
}

// SettingsEventRequest sets the current fair name
type SettingsEventRequest struct {
	NomeEvento string `json:"nome_evento" binding:"required,max=255"`
}
