package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee representa un funcionario. El ID lo asigna la capa de persistencia al crear
// y no cambia después.
type Employee struct {
	ID         string
	Name       string
	Position   string
	Department string
	Salary     decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EmployeePatch campos a aplicar sobre un Employee existente; nil = no se modifica.
type EmployeePatch struct {
	Name       *string
	Position   *string
	Department *string
	Salary     *decimal.Decimal
	UpdatedAt  time.Time
}

// IsEmpty indica si el patch no trae ningún campo del funcionario.
func (p EmployeePatch) IsEmpty() bool {
	return p.Name == nil && p.Position == nil && p.Department == nil && p.Salary == nil
}

// Apply aplica el patch sobre e (en memoria).
func (p EmployeePatch) Apply(e *Employee) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.Salary != nil {
		e.Salary = *p.Salary
	}
	if !p.UpdatedAt.IsZero() {
		e.UpdatedAt = p.UpdatedAt
	}
}
