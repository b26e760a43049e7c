package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fabioverbena/Event-Manager/pkg/apperror"
	"github.com/fabioverbena/Event-Manager/pkg/csvimport"
)

// optional trims s and turns blank values into nil
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func optionalValue(s string) *string {
	return optional(&s)
}

func upper(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToUpper(*s)
	return &v
}

// ImportResult summarises a CSV import
type ImportResult struct {
	Imported int      `json:"importati"`
	Failed   int      `json:"scartati"`
	Errors   []string `json:"errori"`
	// Hidden is the number of errors left out of Errors
	Hidden int `json:"altri_errori"`
	// Required lists the columns every row must fill
	Required []string `json:"colonne_obbligatorie"`
}

func newImportResult(imported int, errs []string, columns []csvimport.Column) *ImportResult {
	shown, hidden := csvimport.Summary(errs, csvimport.DefaultErrorCap)
	if shown == nil {
		shown = []string{}
	}
	return &ImportResult{
		Imported: imported,
		Failed:   len(errs),
		Errors:   shown,
		Hidden:   hidden,
		Required: csvimport.RequiredKeys(columns),
	}
}

func parseError(err error) error {
	if errors.Is(err, csvimport.ErrEmptyFile) {
		return apperror.NewBadRequestError(csvimport.MsgEmptyFile)
	}
	return err
}

// rowError renders a row failure as "Riga N: message"
func rowError(line int, err error) string {
	msg := apperror.MsgGenericError
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
		if len(appErr.Errors) > 0 {
			msg = appErr.Errors[0].Message
		}
	}
	return fmt.Sprintf("Riga %d: %s", line, msg)
}
