package migration

import (
	"fmt"
	"io/fs"
	"sort"

	"gorm.io/gorm"
)

// RunMigrations applies every embedded up migration that has not run yet.
// Applied versions are tracked in schema_migrations by file name. Statements
// go through gorm so placeholders match the active dialect.
func RunMigrations(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migration database handle is required")
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	).Error; err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := fs.ReadDir(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		applied, err := isApplied(db, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		script, err := fs.ReadFile(embeddedMigrations, migrationsDir+"/"+name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(script)).Error; err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
			if err := tx.Exec(
				`INSERT INTO schema_migrations (version) VALUES (?)`, name,
			).Error; err != nil {
				return fmt.Errorf("record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func isApplied(db *gorm.DB, version string) (bool, error) {
	var count int64
	err := db.Table("schema_migrations").
		Where("version = ?", version).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
