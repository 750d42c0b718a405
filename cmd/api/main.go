package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/Employee-api/internal/application/usecase"
	"github.com/jhoicas/Employee-api/internal/domain/repository"
	"github.com/jhoicas/Employee-api/internal/infrastructure/memory"
	"github.com/jhoicas/Employee-api/internal/infrastructure/metrics"
	infraMongo "github.com/jhoicas/Employee-api/internal/infrastructure/mongo"
	httpRouter "github.com/jhoicas/Employee-api/internal/interfaces/http"
	"github.com/jhoicas/Employee-api/pkg/config"
	"github.com/jhoicas/Employee-api/pkg/logger"
)

// @title        Employee API
// @version      1.0.0
// @description  API para gestión de funcionarios.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	m := metrics.New(nil)

	ctx := context.Background()
	var employeeRepo repository.EmployeeRepository
	var mongoClient *infraMongo.Client
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		employeeRepo = memory.NewEmployeeRepository()
	default:
		mongoClient, err = infraMongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MongoDB")
		}
		log.Info().
			Str("database", cfg.Mongo.Database).
			Str("collection", cfg.Mongo.Collection).
			Msg("MongoDB conectado")
		employeeRepo = infraMongo.NewEmployeeRepository(mongoClient, m)
	}

	employeeUC := usecase.NewEmployeeUseCase(employeeRepo)

	app := httpRouter.NewApp(httpRouter.AppDeps{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		EmployeeUC:  employeeUC,
		Metrics:     m,
		Logger:      log,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		serverErr <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := waitForShutdown(quit, serverErr)
	if listenErr != nil {
		log.Error().Err(listenErr).Msg("servidor HTTP finalizado, cerrando aplicación...")
	} else {
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("cierre de MongoDB")
		}
	}

	log.Info().Msg("aplicación detenida")
	if listenErr != nil {
		cancel()
		os.Exit(1)
	}
}

var errServerStopped = errors.New("el servidor HTTP se detuvo sin error")

// waitForShutdown bloquea hasta recibir una señal de apagado (devuelve nil) o hasta que el
// servidor deje de escuchar por su cuenta (devuelve el error de Listen).
func waitForShutdown(quit <-chan os.Signal, serverErr <-chan error) error {
	select {
	case <-quit:
		return nil
	case err := <-serverErr:
		if err == nil {
			return errServerStopped
		}
		return err
	}
}
