package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const listOrdersSQL = `
	SELECT
		id,
		customer,
		line_items,
		price,
		discount_id,
		deliveryman_id,
		status,
		created_at,
		finished_at
	FROM orders
`

// ListOrdersQueryHandler reads orders from the orders table.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns orders oldest first. The status filter is an exact match.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := listOrdersSQL
	var args []any
	if s := query.Status(); s != nil {
		stmt += ` WHERE status = ?`
		args = append(args, s.String())
	}
	stmt += ` ORDER BY created_at, id`

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp          ListOrdersQueryResponse
			id            uuid.UUID
			customer      datatypes.JSONType[OrderCustomer]
			lineItems     datatypes.JSONSlice[OrderLineItem]
			price         decimal.Decimal
			discountID    uuid.NullUUID
			deliverymanID uuid.NullUUID
			status        string
		)

		if err = rows.Scan(
			&id,
			&customer,
			&lineItems,
			&price,
			&discountID,
			&deliverymanID,
			&status,
			&resp.CreatedAt,
			&resp.FinishedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if resp.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if resp.DiscountID, err = optionalID(discountID); err != nil {
			return nil, err
		}
		if resp.DeliverymanID, err = optionalID(deliverymanID); err != nil {
			return nil, err
		}
		resp.Customer = customer.Data()
		resp.LineItems = []OrderLineItem(lineItems)
		if resp.LineItems == nil {
			resp.LineItems = []OrderLineItem{}
		}
		resp.Price = price

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func optionalID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	return kernel.OptionalUUID(&id.UUID)
}
