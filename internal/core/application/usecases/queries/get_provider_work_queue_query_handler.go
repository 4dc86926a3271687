package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ordergroup"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetProviderWorkQueueQueryHandler reads a provider's open groups from the
// database.
type GetProviderWorkQueueQueryHandler struct {
	db *gorm.DB
}

// NewGetProviderWorkQueueQueryHandler creates a handler for work queue queries.
func NewGetProviderWorkQueueQueryHandler(db *gorm.DB) GetProviderWorkQueueQueryHandler {
	return GetProviderWorkQueueQueryHandler{db: db}
}

// Handle returns the provider's groups that are neither Rejected nor
// Completed, oldest first, with their count of still-pending live services.
func (h GetProviderWorkQueueQueryHandler) Handle(
	ctx context.Context,
	query GetProviderWorkQueueQuery,
) ([]GetProviderWorkQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			og.id,
			og.order_id,
			og.status,
			COUNT(s.id) FILTER (WHERE NOT s.deleted AND s.status = ?)
		FROM order_groups og
		LEFT JOIN services s ON s.group_id = og.id
		WHERE og.provider_id = ?
		  AND og.status NOT IN (?, ?)
		GROUP BY og.id, og.order_id, og.status
		ORDER BY og.created_at, og.id
	`,
		int(ordergroup.Pending),
		query.ProviderID().Bytes(),
		int(ordergroup.Rejected),
		int(ordergroup.Completed),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queue := make([]GetProviderWorkQueueQueryResponse, 0)
	for rows.Next() {
		var (
			groupID         uuid.UUID
			orderID         uuid.UUID
			status          int
			pendingServices int
		)
		if err = rows.Scan(&groupID, &orderID, &status, &pendingServices); err != nil {
			return nil, err
		}

		item := GetProviderWorkQueueQueryResponse{
			Status:          ordergroup.Status(status).String(),
			PendingServices: pendingServices,
		}
		if item.GroupID, err = kernel.UUIDFromBytes(groupID[:]); err != nil {
			return nil, err
		}
		if item.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}

		queue = append(queue, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return queue, nil
}
