package repository

import (
	"context"

	"github.com/jhoicas/Employee-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
// Cada método corresponde a una única operación contra el almacén.
//
// GetByID, Update y Delete devuelven domain.ErrInvalidID si el id no tiene el formato
// del almacén y domain.ErrNotFound si no existe el registro.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	Update(ctx context.Context, id string, patch entity.EmployeePatch) (*entity.Employee, error)
	List(ctx context.Context) ([]*entity.Employee, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
