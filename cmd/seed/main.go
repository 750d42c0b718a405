// seed carga funcionarios desde un CSV usando el mismo caso de uso (y validación) que la API.
//
// Uso: go run ./cmd/seed --file employees.csv [--latin1] [--dry-run]
// Lee MONGO_URI, MONGO_DATABASE, etc. igual que cmd/api.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Employee-api/internal/application/usecase"
	"github.com/jhoicas/Employee-api/internal/domain/repository"
	"github.com/jhoicas/Employee-api/internal/infrastructure/memory"
	infraMongo "github.com/jhoicas/Employee-api/internal/infrastructure/mongo"
	"github.com/jhoicas/Employee-api/pkg/config"
	"github.com/jhoicas/Employee-api/pkg/logger"
	"github.com/spf13/cobra"
)

type options struct {
	file   string
	latin1 bool
	dryRun bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Carga funcionarios desde un archivo CSV",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "employees.csv", "ruta del CSV (name,position,department,salary)")
	cmd.Flags().BoolVar(&opts.latin1, "latin1", false, "el archivo está en ISO-8859-1")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "valida sin escribir en la base de datos")
	return cmd
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	rows, err := readEmployees(f, opts.latin1)
	if err != nil {
		return err
	}

	var repo repository.EmployeeRepository
	if opts.dryRun || cfg.Storage.Driver == config.DriverMemory {
		repo = memory.NewEmployeeRepository()
	} else {
		client, err := infraMongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(closeCtx)
		}()
		repo = infraMongo.NewEmployeeRepository(client, nil)
	}

	res := load(ctx, usecase.NewEmployeeUseCase(repo), rows, log)
	log.Info().
		Str("file", opts.file).
		Bool("dry_run", opts.dryRun).
		Int("inserted", res.inserted).
		Int("rejected", res.rejected).
		Msg("carga finalizada")
	if res.rejected > 0 {
		return fmt.Errorf("%d filas rechazadas", res.rejected)
	}
	return nil
}

type result struct {
	inserted int
	rejected int
}

// load inserta las filas válidas; las inválidas se registran y se cuentan, sin detener la carga.
func load(ctx context.Context, uc *usecase.EmployeeUseCase, rows []row, log *logger.Logger) result {
	var res result
	for _, r := range rows {
		if r.Err != nil {
			res.rejected++
			log.Warn().Int("line", r.Line).Err(r.Err).Msg("fila rechazada")
			continue
		}
		out, err := uc.Create(ctx, r.Input)
		if err != nil {
			res.rejected++
			log.Warn().Int("line", r.Line).Err(err).Msg("fila rechazada")
			continue
		}
		res.inserted++
		log.Debug().Int("line", r.Line).Str("id", out.ID).Msg("funcionario creado")
	}
	return res
}
