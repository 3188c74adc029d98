package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/loantrack/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "01032025_create_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Application{}, &models.BuilderVisit{})
			},
		},
		{
			ID: "15042025_backfill_approval_status",
			Migrate: func(tx *gorm.DB) error {
				// older rows predate the two-level approval object; give
				// them the both-Pending starting state
				return tx.Exec(`UPDATE builder_visits
					SET approval = '{"level1":{"status":"Pending","by":"","at":null,"comment":""},"level2":{"status":"Pending","by":"","at":null,"comment":""}}'
					WHERE approval IS NULL OR approval::text = 'null'`).Error
			},
		},
	})

	return m.Migrate()
}
