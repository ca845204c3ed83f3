package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/azorix/solarstore/internal/domain"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a PostgreSQL-backed order store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Create persists an order and its lines in a single transaction.
func (s *PostgresStore) Create(ctx context.Context, o *Order) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Internal(err, "order.create", "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id, status, email,
			ship_name, ship_phone, ship_line1, ship_line2, ship_city, ship_state, ship_pincode,
			item_count, subtotal, offer_savings, mrp_savings, shipping, tax_included,
			coupon_code, coupon_savings, grand_total,
			payment_provider, payment_intent_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		o.ID, o.Status, o.Email,
		o.Address.Name, o.Address.Phone, o.Address.Line1, o.Address.Line2,
		o.Address.City, o.Address.State, o.Address.Pincode,
		o.ItemCount, o.Subtotal, o.OfferSavings, o.MRPSavings, o.Shipping, o.TaxIncluded,
		o.CouponCode, o.CouponSavings, o.GrandTotal,
		o.PaymentProvider, o.PaymentIntentID, o.CreatedAt,
	)
	if err != nil {
		return domain.Internal(err, "order.create", "failed to insert order")
	}

	for i, line := range o.Lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (
				order_id, position, product_id, title, quantity,
				unit_price, final_unit_price, line_total, offer_id, offer_title
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			o.ID, i, line.ProductID, line.Title, line.Quantity,
			line.UnitPrice, line.FinalUnitPrice, line.LineTotal, line.OfferID, line.OfferTitle,
		)
		if err != nil {
			return domain.Internal(err, "order.create", fmt.Sprintf("failed to insert order line %d", i))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Internal(err, "order.create", "failed to commit transaction")
	}

	return nil
}

// Get retrieves an order with its lines.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Order, error) {
	var o Order
	err := s.pool.QueryRow(ctx, `
		SELECT id, status, email,
			ship_name, ship_phone, ship_line1, ship_line2, ship_city, ship_state, ship_pincode,
			item_count, subtotal, offer_savings, mrp_savings, shipping, tax_included,
			coupon_code, coupon_savings, grand_total,
			payment_provider, payment_intent_id, created_at
		FROM orders WHERE id = $1`, id,
	).Scan(
		&o.ID, &o.Status, &o.Email,
		&o.Address.Name, &o.Address.Phone, &o.Address.Line1, &o.Address.Line2,
		&o.Address.City, &o.Address.State, &o.Address.Pincode,
		&o.ItemCount, &o.Subtotal, &o.OfferSavings, &o.MRPSavings, &o.Shipping, &o.TaxIncluded,
		&o.CouponCode, &o.CouponSavings, &o.GrandTotal,
		&o.PaymentProvider, &o.PaymentIntentID, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("order.get", "order", id)
		}
		return nil, domain.Internal(err, "order.get", "failed to query order")
	}

	rows, err := s.pool.Query(ctx, `
		SELECT product_id, title, quantity, unit_price, final_unit_price, line_total, offer_id, offer_title
		FROM order_items WHERE order_id = $1 ORDER BY position`, id,
	)
	if err != nil {
		return nil, domain.Internal(err, "order.get", "failed to query order lines")
	}
	defer rows.Close()

	for rows.Next() {
		var line Line
		if err := rows.Scan(
			&line.ProductID, &line.Title, &line.Quantity,
			&line.UnitPrice, &line.FinalUnitPrice, &line.LineTotal,
			&line.OfferID, &line.OfferTitle,
		); err != nil {
			return nil, domain.Internal(err, "order.get", "failed to scan order line")
		}
		o.Lines = append(o.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "order.get", "failed to read order lines")
	}

	return &o, nil
}

// UpdateStatus transitions an order's status.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := s.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return domain.Internal(err, "order.update_status", "failed to update order status")
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("order.update_status", "order", id)
	}
	return nil
}
