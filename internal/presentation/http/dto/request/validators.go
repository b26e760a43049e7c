package request

import (
	"reflect"
	"strings"

	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	"github.com/fabioverbena/Event-Manager/pkg/apperror"
	"github.com/fabioverbena/Event-Manager/pkg/format"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Blank strings pass every custom rule; services treat them as absent.
var customRules = map[string]func(string) bool{
	"piva":      format.ValidPartitaIVA,
	"codfisc":   format.ValidCodiceFiscale,
	"provincia": format.ValidProvincia,
	"unita": func(s string) bool {
		return enum.Unit(strings.ToLower(s)).IsValid()
	},
}

var ruleMessages = map[string]string{
	"required":  apperror.MsgRequiredField,
	"email":     apperror.MsgInvalidEmail,
	"piva":      apperror.MsgInvalidPartitaIVA,
	"codfisc":   apperror.MsgInvalidCodFiscale,
	"provincia": "Provincia non valida",
	"unita":     "Unità di misura non valida",
	"max":       "Valore troppo lungo",
	"gt":        "Il valore deve essere maggiore di zero",
	"gte":       "Il valore non può essere negativo",
	"lte":       "Valore troppo alto",
	"url":       "URL non valido",
}

// RegisterValidators installs the custom binding rules on gin's validator
// engine. Field errors report json names.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

// Register installs the custom rules on v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// decimals are validated as numbers, so gt/gte/lte work on money fields
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	for tag, rule := range customRules {
		rule := rule
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			return s == "" || rule(s)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// FieldErrors converts validator failures into API field errors. The field is
// the json path without the request type, e.g. "righe[0].quantita".
func FieldErrors(errs validator.ValidationErrors) []apperror.FieldError {
	out := make([]apperror.FieldError, 0, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		msg, ok := ruleMessages[fe.Tag()]
		if !ok {
			msg = "Valore non valido"
		}
		out = append(out, apperror.FieldError{Field: field, Message: msg})
	}
	return out
}
