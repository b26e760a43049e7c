package entity

import "time"

// Setting is a single application-wide key/value pair, such as the
// current event name.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:100;column:chiave" json:"chiave"`
	Value     string    `gorm:"type:text;not null;column:valore" json:"valore"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Setting model
func (Setting) TableName() string {
	return "impostazioni"
}
