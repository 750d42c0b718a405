package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Employee-api/internal/application/dto"
	"github.com/jhoicas/Employee-api/internal/domain/entity"
	"github.com/jhoicas/Employee-api/internal/domain/repository"
)

// EmployeeUseCase casos de uso CRUD para funcionarios. Cada operación hace una sola llamada al repositorio.
type EmployeeUseCase struct {
	repo      repository.EmployeeRepository
	validator *dto.Validator
	now       func() time.Time
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{
		repo:      repo,
		validator: dto.NewValidator(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create valida la entrada y persiste un nuevo funcionario; el ID lo asigna el repositorio.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	employee := &entity.Employee{
		Name:       in.Name,
		Position:   in.Position,
		Department: in.Department,
		Salary:     *in.Salary,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// GetByID obtiene un funcionario por ID.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// Update aplica los campos presentes sobre el funcionario. La validación corre antes de tocar el
// almacén, así una entrada inválida nunca se aplica parcialmente.
func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	patch := entity.EmployeePatch{
		Name:       in.Name,
		Position:   in.Position,
		Department: in.Department,
		Salary:     in.Salary,
	}
	if patch.IsEmpty() {
		return uc.GetByID(ctx, id)
	}
	patch.UpdatedAt = uc.now()
	employee, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// List devuelve todos los funcionarios; lista vacía si no hay ninguno.
func (uc *EmployeeUseCase) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return items, nil
}

// Delete elimina un funcionario por ID.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Ping verifica que el almacén responda (health check).
func (uc *EmployeeUseCase) Ping(ctx context.Context) error {
	return uc.repo.Ping(ctx)
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Position:   e.Position,
		Department: e.Department,
		Salary:     e.Salary,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
