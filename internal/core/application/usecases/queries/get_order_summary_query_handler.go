package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/ordergroup"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderSummaryQueryHandler reads one order tree from the database.
type GetOrderSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderSummaryQueryHandler creates a handler for order summary queries.
func NewGetOrderSummaryQueryHandler(db *gorm.DB) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{db: db}
}

// Handle loads the order row and its group breakdown. Soft-deleted services
// are excluded from counts and totals, matching what the aggregation sees.
func (h GetOrderSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSummaryQuery,
) (GetOrderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	var response GetOrderSummaryQueryResponse

	var orderRow struct {
		ID       uuid.UUID
		PlacedBy uuid.UUID
		Status   int
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, placed_by, status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row().Scan(&orderRow.ID, &orderRow.PlacedBy, &orderRow.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderSummaryQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderSummaryQueryResponse{}, err
	}

	response.ID, err = kernel.UUIDFromBytes(orderRow.ID[:])
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	response.PlacedBy, err = kernel.UUIDFromBytes(orderRow.PlacedBy[:])
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	response.Status = order.Status(orderRow.Status).String()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			og.id,
			og.provider_id,
			og.status,
			COUNT(s.id) FILTER (WHERE NOT s.deleted),
			COALESCE(SUM(s.price_amount) FILTER (WHERE NOT s.deleted), 0)
		FROM order_groups og
		LEFT JOIN services s ON s.group_id = og.id
		WHERE og.order_id = ?
		GROUP BY og.id, og.provider_id, og.status
		ORDER BY og.id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	defer rows.Close()

	response.Groups = make([]OrderGroupSummary, 0)
	for rows.Next() {
		var (
			groupID      uuid.UUID
			providerID   uuid.UUID
			status       int
			serviceCount int
			totalAmount  int64
		)
		if err = rows.Scan(&groupID, &providerID, &status, &serviceCount, &totalAmount); err != nil {
			return GetOrderSummaryQueryResponse{}, err
		}

		summary := OrderGroupSummary{
			Status:       ordergroup.Status(status).String(),
			ServiceCount: serviceCount,
			TotalAmount:  totalAmount,
		}
		if summary.ID, err = kernel.UUIDFromBytes(groupID[:]); err != nil {
			return GetOrderSummaryQueryResponse{}, err
		}
		if summary.ProviderID, err = kernel.UUIDFromBytes(providerID[:]); err != nil {
			return GetOrderSummaryQueryResponse{}, err
		}

		response.Groups = append(response.Groups, summary)
	}

	if err = rows.Err(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	return response, nil
}
