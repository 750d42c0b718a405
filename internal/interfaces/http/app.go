package http

import (
	"errors"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Employee-api/docs"
	"github.com/jhoicas/Employee-api/internal/application/dto"
	"github.com/jhoicas/Employee-api/internal/application/usecase"
	"github.com/jhoicas/Employee-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Employee-api/pkg/logger"
)

// AppDeps dependencias para construir la aplicación HTTP completa.
type AppDeps struct {
	Name        string
	CORSOrigins string
	EmployeeUC  *usecase.EmployeeUseCase
	Metrics     *metrics.Metrics
	Logger      *logger.Logger
}

// NewApp construye la app Fiber con middlewares, rutas fijas (/, /health, /metrics, /api-docs)
// y las rutas de la API.
func NewApp(deps AppDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               deps.Name,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	// El orden importa: métricas y log envuelven al resto para ver el status final.
	if deps.Metrics != nil {
		app.Use(MetricsMiddleware(deps.Metrics))
	}
	app.Use(RequestLogger(deps.Logger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: deps.CORSOrigins}))

	// Swagger UI: http://localhost:<port>/api-docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FilePath:    "api-docs/swagger.json",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "api-docs",
		Title:       docs.SwaggerInfo.Title,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running")
	})
	app.Get("/health", NewHealthHandler(deps.Name, deps.EmployeeUC).Health)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	Router(app, RouterDeps{
		EmployeeUC: deps.EmployeeUC,
		Logger:     deps.Logger,
	})

	return app
}

// errorHandler responde los errores no manejados (rutas inexistentes, panics) con dto.ErrorResponse.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(dto.ErrorResponse{Code: errorCode(code), Message: err.Error()})
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL"
		}
		return "ERROR"
	}
}
