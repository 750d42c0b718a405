package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Employee-api/internal/application/dto"
	"github.com/jhoicas/Employee-api/internal/application/usecase"
	"github.com/jhoicas/Employee-api/internal/domain"
	"github.com/jhoicas/Employee-api/pkg/logger"
)

// Mensajes fijos de la API de funcionarios.
const (
	msgEmployeeNotFound = "Employee not found"
	msgEmployeeDeleted  = "Employee deleted"
	msgInvalidID        = "invalid employee id"
)

// EmployeeHandler maneja las peticiones HTTP para Employee.
type EmployeeHandler struct {
	uc  *usecase.EmployeeUseCase
	log *logger.Logger
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase, log *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Retorna la lista de todos los funcionarios
// @Tags         Employees
// @Produce      json
// @Success      200  {array}   dto.EmployeeResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Retorna un funcionario específico
// @Tags         Employees
// @Produce      json
// @Param        id   path      string  true  "ID del funcionario"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crea un nuevo funcionario
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateEmployeeRequest  true  "Datos del funcionario"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := decodeStrict(c.Body(), &in, "salary"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualiza un funcionario específico
// @Description  Aplica solo los campos enviados; la validación corre antes de persistir.
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID del funcionario"
// @Param        body  body      dto.UpdateEmployeeRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := decodeStrict(c.Body(), &in, "salary"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Elimina un funcionario específico
// @Tags         Employees
// @Produce      json
// @Param        id   path      string  true  "ID del funcionario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: msgEmployeeDeleted})
}

// fail traduce errores de dominio a respuestas HTTP: 400 entrada/ID inválido, 404 no existe,
// 500 cualquier otro fallo del almacén (con el mensaje original).
func (h *EmployeeHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: msgInvalidID})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msgEmployeeNotFound})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		h.log.Error().Err(err).
			Str("request_id", GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("fallo del almacén")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
