package grouprepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ordergroup"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderGroupRepository implements OrderGroupRepository using GORM.
type GormOrderGroupRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderGroupRepository creates a new GORM order group repository.
func NewGormOrderGroupRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderGroupRepository {
	return &GormOrderGroupRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order group to the database.
func (r *GormOrderGroupRepository) Add(ctx context.Context, aggregate *ordergroup.OrderGroup) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := groupFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order group to the database.
func (r *GormOrderGroupRepository) Update(ctx context.Context, aggregate *ordergroup.OrderGroup) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := groupFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderGroupDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order group by ID.
func (r *GormOrderGroupRepository) Get(ctx context.Context, id kernel.UUID) (*ordergroup.OrderGroup, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderGroupDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderGroup", id.String())
		}
		return nil, err
	}

	return groupToDomain(dto)
}

// GetForUpdate retrieves an order group and takes an exclusive row lock on it.
// Must run inside a transaction; the lock serializes every service-level
// mutation under this group.
func (r *GormOrderGroupRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*ordergroup.OrderGroup, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderGroupDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderGroup", id.String())
		}
		return nil, err
	}

	return groupToDomain(dto)
}

// GetStatusesByOrder returns the statuses of all groups of an order.
func (r *GormOrderGroupRepository) GetStatusesByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]ordergroup.Status, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var raw []int
	err := r.db.WithContext(ctx).
		Model(&OrderGroupDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Pluck("status", &raw).Error
	if err != nil {
		return nil, err
	}

	statuses := make([]ordergroup.Status, 0, len(raw))
	for _, s := range raw {
		statuses = append(statuses, ordergroup.Status(s))
	}

	return statuses, nil
}

// GetIDsByOrder returns the identifiers of all groups of an order.
func (r *GormOrderGroupRepository) GetIDsByOrder(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderGroupDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Order("id").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, idErr := kernel.UUIDFromBytes(b[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// AddService saves a new service to the database.
func (r *GormOrderGroupRepository) AddService(ctx context.Context, service *ordergroup.Service) error {
	if err := service.Validate(); err != nil {
		return err
	}

	dto := serviceFromDomain(service)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(service.ID(), service)
	return nil
}

// UpdateService saves an existing service to the database. The deleted flag
// is written through a column map because Updates skips zero-value fields on
// struct input, which would make soft-delete restores invisible.
func (r *GormOrderGroupRepository) UpdateService(ctx context.Context, service *ordergroup.Service) error {
	if err := service.Validate(); err != nil {
		return err
	}

	dto := serviceFromDomain(service)
	result := r.db.WithContext(ctx).
		Model(&ServiceDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":         dto.Status,
			"price_amount":   dto.PriceAmount,
			"price_currency": dto.PriceCurrency,
			"deleted":        dto.Deleted,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(service.ID(), service)
	return nil
}

// GetService retrieves a service by ID, soft-deleted or not.
func (r *GormOrderGroupRepository) GetService(ctx context.Context, id kernel.UUID) (*ordergroup.Service, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ServiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("service", id.String())
		}
		return nil, err
	}

	return serviceToDomain(dto)
}

// GetServiceStatusesByGroup returns the statuses of the group's live services.
func (r *GormOrderGroupRepository) GetServiceStatusesByGroup(
	ctx context.Context,
	groupID kernel.UUID,
) ([]ordergroup.Status, error) {
	if err := groupID.Validate(); err != nil {
		return nil, err
	}

	var raw []int
	err := r.db.WithContext(ctx).
		Model(&ServiceDTO{}).
		Where("group_id = ? AND deleted = false", groupID.Bytes()).
		Pluck("status", &raw).Error
	if err != nil {
		return nil, err
	}

	statuses := make([]ordergroup.Status, 0, len(raw))
	for _, s := range raw {
		statuses = append(statuses, ordergroup.Status(s))
	}

	return statuses, nil
}

// PurgeService permanently deletes a service row.
func (r *GormOrderGroupRepository) PurgeService(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ServiceDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("service", id.String())
	}

	return nil
}

// GetOrderIDsTouchedSince returns identifiers of orders whose groups or
// services changed after the given instant.
func (r *GormOrderGroupRepository) GetOrderIDsTouchedSince(
	ctx context.Context,
	since time.Time,
) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT og.order_id
		FROM order_groups og
		LEFT JOIN services s ON s.group_id = og.id
		WHERE og.updated_at > ? OR s.updated_at > ?
		ORDER BY og.order_id
	`, since, since).Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, idErr := kernel.UUIDFromBytes(b[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}
