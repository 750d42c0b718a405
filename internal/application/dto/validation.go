package dto

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/Employee-api/internal/domain"
	"github.com/shopspring/decimal"
)

// FieldError describe un campo inválido en la entrada.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError agrupa los campos inválidos de una petición. Envuelve domain.ErrInvalidInput.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, describe(f))
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

func describe(f FieldError) string {
	switch {
	case f.Rule == "required":
		return fmt.Sprintf("%s is required", f.Field)
	case f.Rule == "notblank":
		return fmt.Sprintf("%s must not be empty", f.Field)
	case f.Rule == "nonnegative":
		return fmt.Sprintf("%s must be greater than or equal to 0", f.Field)
	case f.Rule == "decimal128":
		return fmt.Sprintf("%s is out of range (at most %d significant digits, exponent between %d and %d)",
			f.Field, decimal128Digits, decimal128MinExp, decimal128MaxExp)
	case strings.HasPrefix(f.Rule, "max="):
		return fmt.Sprintf("%s must be at most %s characters", f.Field, strings.TrimPrefix(f.Rule, "max="))
	default:
		return fmt.Sprintf("%s is invalid (%s)", f.Field, f.Rule)
	}
}

// Validator valida los DTOs de entrada con las reglas de sus tags `validate`.
type Validator struct {
	v *validator.Validate
}

// NewValidator construye el validador con los nombres JSON de los campos y las reglas propias
// notblank, nonnegative y decimal128.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("nonnegative", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.Sign() >= 0
	})
	_ = v.RegisterValidation("decimal128", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && fitsDecimal128(d)
	})
	return &Validator{v: v}
}

// Struct valida in y devuelve *ValidationError si alguna regla falla.
func (val *Validator) Struct(in interface{}) error {
	err := val.v.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validar entrada: %w", err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: rule})
	}
	return out
}

// Límites de BSON Decimal128, el tipo con que se persiste salary.
const (
	decimal128Digits = 34
	decimal128MinExp = -6176
	decimal128MaxExp = 6111

	// Coeficientes más largos se rechazan sin normalizar: ~1200 dígitos escritos.
	maxCoefficientBits = 4096
)

var bigTen = big.NewInt(10)

// fitsDecimal128 indica si d se puede guardar como Decimal128 sin perder dígitos. Acota también
// el costo de serializar d a JSON, que crece con el exponente.
func fitsDecimal128(d decimal.Decimal) bool {
	coef := d.Coefficient()
	coef.Abs(coef)
	exp := int64(d.Exponent())
	if coef.Sign() == 0 {
		return exp >= decimal128MinExp && exp <= decimal128MaxExp
	}
	if coef.BitLen() > maxCoefficientBits {
		return false
	}

	// Quitar ceros finales mientras el exponente lo permita.
	q, r := new(big.Int), new(big.Int)
	for exp < decimal128MaxExp {
		q.QuoRem(coef, bigTen, r)
		if r.Sign() != 0 {
			break
		}
		coef, q = q, coef
		exp++
	}

	digits := int64(len(coef.String()))
	switch {
	case digits > decimal128Digits:
		return false
	case exp < decimal128MinExp:
		return false
	case exp > decimal128MaxExp:
		// Se puede representar rellenando el coeficiente con ceros.
		return digits+exp-decimal128MaxExp <= decimal128Digits
	default:
		return true
	}
}
