package migrations

import (
	"context"
	"encoding/json"

	"github.com/uptrace/bun"

	"mock-interview-service/internal/bank"
)

func init() {
	// Seed the built-in catalog. Existing rows win so operators can replace
	// bank content without the seed overwriting it.
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			for role, b := range bank.DefaultCatalog() {
				data, err := json.Marshal(b)
				if err != nil {
					return err
				}
				if _, err := db.ExecContext(ctx,
					`INSERT INTO question_banks (role, data) VALUES (?, ?::jsonb) ON CONFLICT (role) DO NOTHING`,
					role, string(data)); err != nil {
					return err
				}
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`DELETE FROM question_banks`)
			return err
		},
	)
}
