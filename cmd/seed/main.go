// seed prepara una base nueva: crea el primer Administrador y, opcionalmente, importa el
// catálogo de productos exportado por el sistema anterior (CSV en ISO-8859-1).
//
// Uso: go run ./cmd/seed [-productos catalogo.csv] [-sep ';']
// Requiere JWT_SECRET y ADMIN_PASSWORD además de la configuración de DB.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/usecase"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/catalogcsv"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/infrastructure/postgres"
	"github.com/jeancarlo3213/ferrefactura-backend/pkg/config"
	"github.com/jeancarlo3213/ferrefactura-backend/pkg/logger"
)

func main() {
	productsPath := flag.String("productos", "", "CSV del catálogo (ISO-8859-1)")
	sep := flag.String("sep", ";", "separador de columnas del CSV")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.Admin.Password == "" {
		log.Fatal().Msg("ADMIN_PASSWORD es obligatorio")
	}
	users := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
	admin, err := users.Create(ctx, dto.UserRequest{
		Name:     "Administrador",
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Role:     entity.RoleAdministrador,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		log.Info().Str("usuario", cfg.Admin.Username).Msg("el administrador ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador")
	default:
		log.Info().Int64("id", admin.ID).Str("usuario", admin.Username).Msg("administrador creado")
	}

	if *productsPath == "" {
		return
	}
	comma, _ := utf8.DecodeRuneInString(*sep)

	f, err := os.Open(*productsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir catálogo")
	}
	defer f.Close()

	rows, rowErrs, err := catalogcsv.ReadProducts(f, comma)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}
	for _, re := range rowErrs {
		log.Warn().Int("linea", re.Line).Err(re.Err).Msg("fila descartada")
	}

	// Sin invalidador: el seed corre antes de que exista caché de reportes.
	products := usecase.NewProductUseCase(postgres.NewProductRepository(pool), nil, log)
	created, skipped := 0, 0
	for _, p := range rows {
		if _, err := products.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrInvalidInput) {
				log.Warn().Err(err).Str("producto", p.Name).Msg("producto omitido")
				skipped++
				continue
			}
			log.Fatal().Err(err).Str("producto", p.Name).Msg("importar producto")
		}
		created++
	}
	log.Info().Int("creados", created).Int("omitidos", skipped).Int("filas_invalidas", len(rowErrs)).Msg("catálogo importado")
}
