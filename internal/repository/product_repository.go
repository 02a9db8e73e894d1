package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Product mirrors the 'products' table. VendorName is a snapshot of the
// owning vendor's business name taken at creation time.
type Product struct {
	ID            uint64    `json:"id"`
	VendorID      uint64    `json:"vendor_id"`
	VendorName    string    `json:"vendor_name"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	Description   string    `json:"description"`
	StockQuantity int       `json:"stock_quantity"`
	Rating        float64   `json:"rating"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductQuery defines the fixed set of optional predicates for catalog
// listing. It compiles to a parameterized statement; filters are never
// concatenated from raw input.
type ProductQuery struct {
	Category string // exact match unless empty or "all"
	Search   string // case-insensitive substring over title OR description
	Sort     string // price-low | price-high | rating | anything else = natural order
}

const productColumns = "id,vendor_id,vendor_name,title,category,price,description,stock_quantity,rating,image_url,created_at,updated_at"

// Build compiles the query spec into SQL and its argument list.
func (q ProductQuery) Build() (string, []any) {
	stmt := "SELECT " + productColumns + " FROM products"
	var where []string
	var args []any

	if q.Category != "" && !strings.EqualFold(q.Category, "all") {
		where = append(where, "category = ?")
		args = append(args, q.Category)
	}
	if q.Search != "" {
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		term := "%" + strings.ToLower(q.Search) + "%"
		args = append(args, term, term)
	}
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}

	switch q.Sort {
	case "price-low":
		stmt += " ORDER BY price ASC"
	case "price-high":
		stmt += " ORDER BY price DESC"
	case "rating":
		stmt += " ORDER BY rating DESC"
	}
	return stmt, args
}

type ProductRepo struct{ db *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions that
// span repositories.
func (r *ProductRepo) DB() *sql.DB { return r.db }

const selectProductByIDSQL = "SELECT " + productColumns + " FROM products WHERE id=? LIMIT 1"
const selectProductsByVendorSQL = "SELECT " + productColumns + " FROM products WHERE vendor_id=?"
const insertProductSQL = `INSERT INTO products
	(vendor_id, vendor_name, title, category, price, description, stock_quantity, image_url)
	VALUES (?,?,?,?,?,?,?,?)`
const selectProductOwnedSQL = "SELECT id FROM products WHERE id=? AND vendor_id=?"
const updateProductSQL = `UPDATE products
	SET title=?, category=?, price=?, description=?, updated_at=CURRENT_TIMESTAMP
	WHERE id=? AND vendor_id=?`
const deleteProductSQL = "DELETE FROM products WHERE id=? AND vendor_id=?"
const updateStockSQL = "UPDATE products SET stock_quantity=? WHERE id=? AND vendor_id=?"
const decrementStockSQL = "UPDATE products SET stock_quantity = stock_quantity - ? WHERE id=?"

func scanProduct(row interface{ Scan(...any) error }, p *Product) error {
	return row.Scan(&p.ID, &p.VendorID, &p.VendorName, &p.Title, &p.Category, &p.Price,
		&p.Description, &p.StockQuantity, &p.Rating, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
}

// Search returns every product matching the query spec. No pagination.
func (r *ProductRepo) Search(ctx context.Context, q ProductQuery) ([]Product, error) {
	stmt, args := q.Build()
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single product or ErrProductNotFound.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (Product, error) {
	var p Product
	err := scanProduct(r.db.QueryRowContext(ctx, selectProductByIDSQL, id), &p)
	if err == sql.ErrNoRows {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

// ListByVendor returns all products owned by the given vendor.
func (r *ProductRepo) ListByVendor(ctx context.Context, vendorID uint64) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, selectProductsByVendorSQL, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a product and populates the generated ID.
func (r *ProductRepo) Create(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, insertProductSQL,
		p.VendorID, p.VendorName, p.Title, p.Category, p.Price, p.Description, p.StockQuantity, p.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// ownedByVendor verifies id+vendor_id existence. MySQL reports zero affected
// rows for no-op updates, so ownership is checked up front instead of relying
// on RowsAffected.
func (r *ProductRepo) ownedByVendor(ctx context.Context, id, vendorID uint64) error {
	var got uint64
	err := r.db.QueryRowContext(ctx, selectProductOwnedSQL, id, vendorID).Scan(&got)
	if err == sql.ErrNoRows {
		return ErrProductNotFound
	}
	return err
}

// Update overwrites title/category/price/description and bumps updated_at.
// Stock is not updatable through this operation.
func (r *ProductRepo) Update(ctx context.Context, id, vendorID uint64, title, category string, price float64, description string) error {
	if err := r.ownedByVendor(ctx, id, vendorID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, updateProductSQL, title, category, price, description, id, vendorID)
	return err
}

// Delete removes the product when id+vendor_id match.
func (r *ProductRepo) Delete(ctx context.Context, id, vendorID uint64) error {
	res, err := r.db.ExecContext(ctx, deleteProductSQL, id, vendorID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// UpdateStock sets stock_quantity to the caller-supplied value verbatim.
func (r *ProductRepo) UpdateStock(ctx context.Context, id, vendorID uint64, stock int) error {
	if err := r.ownedByVendor(ctx, id, vendorID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, updateStockSQL, stock, id, vendorID)
	return err
}

// DecrementStockTx decrements a product's stock inside an order transaction.
// The decrement is unconditional; quantities are trusted from the order line.
func (r *ProductRepo) DecrementStockTx(ctx context.Context, tx *sql.Tx, productID uint64, quantity int) error {
	_, err := tx.ExecContext(ctx, decrementStockSQL, quantity, productID)
	return err
}
