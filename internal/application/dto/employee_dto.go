package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// salary viaja como número JSON, no como string.
	decimal.MarshalJSONWithoutQuotes = true
}

// CreateEmployeeRequest entrada para crear un funcionario. Todos los campos son obligatorios.
type CreateEmployeeRequest struct {
	Name       string           `json:"name" validate:"required,notblank,max=200" example:"John Doe"`
	Position   string           `json:"position" validate:"required,notblank,max=200" example:"Developer"`
	Department string           `json:"department" validate:"required,notblank,max=200" example:"Engineering"`
	Salary     *decimal.Decimal `json:"salary" validate:"required,nonnegative,decimal128" swaggertype:"number" example:"60000"`
}

// UpdateEmployeeRequest entrada para actualizar un funcionario; solo se aplican los campos presentes.
type UpdateEmployeeRequest struct {
	Name       *string          `json:"name" validate:"omitempty,notblank,max=200" example:"John Doe"`
	Position   *string          `json:"position" validate:"omitempty,notblank,max=200" example:"Senior Developer"`
	Department *string          `json:"department" validate:"omitempty,notblank,max=200" example:"Engineering"`
	Salary     *decimal.Decimal `json:"salary" validate:"omitempty,nonnegative,decimal128" swaggertype:"number" example:"75000"`
}

// EmployeeResponse salida de un funcionario.
type EmployeeResponse struct {
	ID         string          `json:"id" example:"665f1c2e9b1e8a3d4c5b6a79"`
	Name       string          `json:"name" example:"John Doe"`
	Position   string          `json:"position" example:"Developer"`
	Department string          `json:"department" example:"Engineering"`
	Salary     decimal.Decimal `json:"salary" swaggertype:"number" example:"60000"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
