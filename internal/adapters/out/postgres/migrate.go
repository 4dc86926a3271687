package postgres

import (
	"fulfillment/internal/adapters/out/postgres/grouprepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all fulfillment tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&grouprepo.OrderGroupDTO{},
		&grouprepo.ServiceDTO{},
	)
}
