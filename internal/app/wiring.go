// Package app arma las dependencias del almacén a partir de la configuración.
// Lo comparten la API (cmd/api) y la CLI (cmd/socksctl).
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	appsocks "github.com/jhoicas/socks-api/internal/application/socks"
	"github.com/jhoicas/socks-api/internal/domain/repository"
	"github.com/jhoicas/socks-api/internal/infrastructure/cache"
	"github.com/jhoicas/socks-api/internal/infrastructure/csvimport"
	"github.com/jhoicas/socks-api/internal/infrastructure/memory"
	"github.com/jhoicas/socks-api/internal/infrastructure/pdf"
	"github.com/jhoicas/socks-api/internal/infrastructure/postgres"
	"github.com/jhoicas/socks-api/pkg/config"
)

// Options ajustes de armado que no vienen de la configuración.
type Options struct {
	Metrics appsocks.Metrics // nil = sin métricas
	Migrate bool             // aplicar migraciones embebidas antes de arrancar (solo postgres)
}

// Deps dependencias listas para usar.
type Deps struct {
	Socks         *appsocks.SocksUseCase
	ImportOptions csvimport.Options
	closers       []func()
}

// Close libera conexiones (pool, Redis) en orden inverso a su apertura.
func (d *Deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// Build construye el caso de uso con el almacenamiento, la caché y el generador de reportes configurados.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts Options) (*Deps, error) {
	deps := &Deps{
		ImportOptions: csvimport.Options{
			Delimiter: cfg.Socks.Delimiter(),
			Charset:   cfg.Socks.ImportCharset,
		},
	}

	var (
		txRunner appsocks.TxRunner
		repo     repository.SocksRepository
	)
	switch cfg.Socks.Storage {
	case "memory":
		store := memory.NewStore()
		txRunner, repo = store, store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		deps.closers = append(deps.closers, pool.Close)
		if opts.Migrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				deps.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
		}
		txRunner, repo = postgres.NewTxRunner(pool), postgres.NewSocksRepository(pool)
	}

	var qc appsocks.QuantityCache
	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		deps.Close()
		return nil, err
	}
	if rdb != nil {
		deps.closers = append(deps.closers, func() { _ = rdb.Close() })
		qc = cache.NewQuantityCache(rdb, cfg.Redis.Prefix, cfg.Redis.TTL)
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("caché de cantidades en Redis")
	}

	deps.Socks = appsocks.NewSocksUseCase(
		txRunner,
		repo,
		qc,
		opts.Metrics,
		pdf.NewMarotoPDFGenerator(cfg.App.Name),
		appsocks.Config{
			OutcomeMissing: appsocks.OutcomeMissingPolicy(cfg.Socks.OutcomeMissing),
			ImportMode:     appsocks.ImportMode(cfg.Socks.ImportMode),
		},
		log,
	)
	return deps, nil
}
