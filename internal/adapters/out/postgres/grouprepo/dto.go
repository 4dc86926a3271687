// Package grouprepo provides data transfer objects and mapping functions for
// order group persistence. The group aggregate and its services are stored in
// two tables; the group row doubles as the per-group serialization point for
// service mutations.
package grouprepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ordergroup"

	"github.com/google/uuid"
)

// OrderGroupDTO represents the database structure for persisting order group
// aggregates.
type OrderGroupDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	ProviderID uuid.UUID `gorm:"type:uuid;index"`
	Status     int       `gorm:"index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for order group entities.
func (OrderGroupDTO) TableName() string {
	return "order_groups"
}

// ServiceDTO represents the database structure for persisting services.
// Deleted rows stay in the table; aggregation reads filter them out.
type ServiceDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupID       uuid.UUID `gorm:"type:uuid;index"`
	Status        int
	PriceAmount   int64
	PriceCurrency string    `gorm:"type:varchar(3)"`
	Deleted       bool      `gorm:"index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for service entities.
func (ServiceDTO) TableName() string {
	return "services"
}

func groupFromDomain(aggregate *ordergroup.OrderGroup) OrderGroupDTO {
	return OrderGroupDTO{
		ID:         aggregate.ID().Bytes(),
		OrderID:    aggregate.OrderID().Bytes(),
		ProviderID: aggregate.ProviderID().Bytes(),
		Status:     int(aggregate.Status()),
	}
}

func groupToDomain(dto OrderGroupDTO) (*ordergroup.OrderGroup, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	providerID, err := kernel.UUIDFromBytes(dto.ProviderID[:])
	if err != nil {
		return nil, err
	}

	return ordergroup.RestoreOrderGroup(id, orderID, providerID, ordergroup.Status(dto.Status))
}

func serviceFromDomain(service *ordergroup.Service) ServiceDTO {
	return ServiceDTO{
		ID:            service.ID().Bytes(),
		GroupID:       service.GroupID().Bytes(),
		Status:        int(service.Status()),
		PriceAmount:   service.Price().Amount(),
		PriceCurrency: service.Price().Currency(),
		Deleted:       service.IsDeleted(),
	}
}

func serviceToDomain(dto ServiceDTO) (*ordergroup.Service, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	groupID, err := kernel.UUIDFromBytes(dto.GroupID[:])
	if err != nil {
		return nil, err
	}

	price, err := ordergroup.NewPrice(dto.PriceAmount, dto.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return ordergroup.RestoreService(id, groupID, ordergroup.Status(dto.Status), price, dto.Deleted)
}
