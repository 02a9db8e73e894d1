package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements holds the bundled DDL executed at startup. Every statement
// is idempotent (CREATE TABLE IF NOT EXISTS) so the server can boot against
// an empty database or an existing one.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uk_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS vendors (
		id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
		business_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		address VARCHAR(500) NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uk_vendors_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
		vendor_id BIGINT UNSIGNED NOT NULL,
		vendor_name VARCHAR(255) NOT NULL,
		title VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL,
		price DECIMAL(10,2) NOT NULL DEFAULT 0,
		description TEXT NOT NULL,
		stock_quantity INT NOT NULL DEFAULT 0,
		rating DECIMAL(3,2) NOT NULL DEFAULT 0,
		image_url VARCHAR(512) NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (vendor_id) REFERENCES vendors(id),
		INDEX idx_products_vendor (vendor_id),
		INDEX idx_products_category (category),
		INDEX idx_products_price (price)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		total_amount DECIMAL(10,2) NOT NULL,
		shipping_address VARCHAR(500) NOT NULL DEFAULT '',
		payment_method VARCHAR(50) NOT NULL DEFAULT 'credit_card',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id),
		INDEX idx_orders_user (user_id),
		INDEX idx_orders_created_at (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
		order_id BIGINT UNSIGNED NOT NULL,
		product_id BIGINT UNSIGNED NOT NULL,
		quantity INT NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id),
		FOREIGN KEY (product_id) REFERENCES products(id),
		INDEX idx_order_items_order (order_id),
		INDEX idx_order_items_product (product_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the storefront tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
