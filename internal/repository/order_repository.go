package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Order mirrors the 'orders' table. Orders are created fully-formed inside
// one transaction together with their items and are immutable afterwards.
type Order struct {
	ID              uint64
	UserID          uint64
	TotalAmount     float64
	ShippingAddress string
	PaymentMethod   string
	CreatedAt       time.Time
}

// OrderItem mirrors the 'order_items' table. Price is a snapshot taken at
// purchase time, not a live join to the product.
type OrderItem struct {
	OrderID   uint64
	ProductID uint64
	Quantity  int
	Price     float64
}

// OrderSummary is the listing shape returned to shoppers: the order header
// plus a comma-joined concatenation of its products' titles.
type OrderSummary struct {
	ID              uint64    `json:"id"`
	UserID          uint64    `json:"user_id"`
	TotalAmount     float64   `json:"total_amount"`
	ShippingAddress string    `json:"shipping_address"`
	PaymentMethod   string    `json:"payment_method"`
	CreatedAt       time.Time `json:"created_at"`
	Products        string    `json:"products"`
}

type OrderRepo struct{ db *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle so handlers can begin the order
// transaction spanning orders, order_items and products.
func (r *OrderRepo) DB() *sql.DB { return r.db }

const insertOrderSQL = "INSERT INTO orders (user_id, total_amount, shipping_address, payment_method) VALUES (?,?,?,?)"
const listOrdersByUserSQL = `SELECT o.id, o.user_id, o.total_amount, o.shipping_address, o.payment_method, o.created_at,
		GROUP_CONCAT(p.title) AS products
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN products p ON p.id = oi.product_id
	WHERE o.user_id = ?
	GROUP BY o.id
	ORDER BY o.created_at DESC`

// CreateTx inserts the order header within an existing transaction and
// populates the generated ID. The caller commits or rolls back.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *Order) error {
	res, err := tx.ExecContext(ctx, insertOrderSQL, o.UserID, o.TotalAmount, o.ShippingAddress, o.PaymentMethod)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

// CreateItemsBulkTx inserts all line items in a single multi-row statement
// within the provided transaction. An empty slice is a no-op.
func (r *OrderRepo) CreateItemsBulkTx(ctx context.Context, tx *sql.Tx, items []OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("INSERT INTO order_items (order_id, product_id, quantity, price) VALUES ")
	args := make([]any, 0, len(items)*4)
	for i, it := range items {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?,?,?,?)")
		args = append(args, it.OrderID, it.ProductID, it.Quantity, it.Price)
	}
	_, err := tx.ExecContext(ctx, b.String(), args...)
	return err
}

// ListByUser returns the caller's orders newest first, each annotated with
// the concatenated titles of its constituent products.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]OrderSummary, error) {
	rows, err := r.db.QueryContext(ctx, listOrdersByUserSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]OrderSummary, 0)
	for rows.Next() {
		var o OrderSummary
		var products sql.NullString
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.ShippingAddress, &o.PaymentMethod, &o.CreatedAt, &products); err != nil {
			return nil, err
		}
		if products.Valid {
			o.Products = products.String
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
