package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Employee-api/internal/application/usecase"
	"github.com/jhoicas/Employee-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EmployeeUC *usecase.EmployeeUseCase
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	employees := api.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, deps.Logger)
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)
}
