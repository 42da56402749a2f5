package repository

import (
	"context"
	"fmt"

	"loyalty-program/internal/data/entity"
	"loyalty-program/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SettingsRepository interface {
	FindActiveByName(ctx context.Context, name string) (*entity.Setting, error)
	ValueOf(ctx context.Context, name string) (float64, error)
}

type settingsRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSettingsRepository(db database.Querier, log *zap.Logger) SettingsRepository {
	return &settingsRepository{
		db:  db,
		log: log.With(zap.String("repository", "settings")),
	}
}

func (r *settingsRepository) FindActiveByName(ctx context.Context, name string) (*entity.Setting, error) {
	query := `
		SELECT id, name, value, status, created_at
		FROM settings
		WHERE name = $1 AND status = 'active'
	`

	var setting entity.Setting
	err := r.db.QueryRow(ctx, query, name).Scan(
		&setting.ID,
		&setting.Name,
		&setting.Value,
		&setting.Status,
		&setting.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find setting",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find setting %s: %w", name, err)
	}

	return &setting, nil
}

// ValueOf returns the active value for the property, zero when unset.
func (r *settingsRepository) ValueOf(ctx context.Context, name string) (float64, error) {
	setting, err := r.FindActiveByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if setting == nil {
		return 0, nil
	}
	return setting.Value, nil
}
