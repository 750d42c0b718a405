// Package memory implementa el repositorio de funcionarios en memoria, para correr la API sin
// base de datos (STORAGE_DRIVER=memory) y en tests. Los IDs usan el mismo formato que MongoDB.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Employee-api/internal/domain"
	"github.com/jhoicas/Employee-api/internal/domain/entity"
	"github.com/jhoicas/Employee-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo almacén en memoria seguro para uso concurrente.
type EmployeeRepo struct {
	mu    sync.RWMutex
	order []string
	items map[string]entity.Employee
}

// NewEmployeeRepository construye un repositorio vacío.
func NewEmployeeRepository() *EmployeeRepo {
	return &EmployeeRepo{items: make(map[string]entity.Employee)}
}

// Create asigna un ID nuevo y guarda una copia del funcionario.
func (r *EmployeeRepo) Create(_ context.Context, employee *entity.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee.ID = primitive.NewObjectID().Hex()
	r.items[employee.ID] = *employee
	r.order = append(r.order, employee.ID)
	return nil
}

// GetByID obtiene un funcionario por ID.
func (r *EmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

// Update aplica el patch de forma atómica y devuelve el registro resultante.
func (r *EmployeeRepo) Update(_ context.Context, id string, patch entity.EmployeePatch) (*entity.Employee, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.Apply(&e)
	r.items[id] = e
	return &e, nil
}

// List devuelve todos los funcionarios en orden de inserción.
func (r *EmployeeRepo) List(_ context.Context) ([]*entity.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Employee, 0, len(r.order))
	for _, id := range r.order {
		e := r.items[id]
		list = append(list, &e)
	}
	return list, nil
}

// Delete elimina un funcionario por ID.
func (r *EmployeeRepo) Delete(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Ping siempre responde; no hay conexión que verificar.
func (r *EmployeeRepo) Ping(_ context.Context) error {
	return nil
}

func checkID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}
