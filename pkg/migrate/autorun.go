package migrate

import (
	"context"
	"fmt"

	"github.com/rmarchetti/posplus-backend/pkg/config"
	"github.com/rmarchetti/posplus-backend/pkg/db"
	"github.com/rmarchetti/posplus-backend/pkg/logger"
)

// MaybeRunDev brings the schema up automatically for dev deployments. The
// embedded sqlite driver uses gorm's AutoMigrate; postgres runs the goose
// migrations in DefaultDir.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() {
		return nil
	}

	if cfg.DB.IsSQLite() {
		logg.Info(ctx, "auto-migrating sqlite schema (dev)")
		if err := client.AutoMigrate(ctx); err != nil {
			return fmt.Errorf("sqlite auto-migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta := map[string]any{"env": cfg.App.Env, "dir": DefaultDir}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}
