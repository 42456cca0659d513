package seeder

import (
	"context"
	"fmt"

	"wow-campus/internal/database"
	applog "wow-campus/internal/logger"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	logger := applog.OrNop(r.Logger)
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if sr, ok := s.(SchemaRequirer); ok {
			if err := CheckSchema(ctx, db, sr.RequiredColumns()); err != nil {
				return fmt.Errorf("seed %s: %w", s.Name(), err)
			}
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Info("seeder applied", zap.String("seeder", s.Name()))
	}
	return nil
}
