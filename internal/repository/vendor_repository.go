package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/shopifier/internal/utils"
)

// Vendor mirrors the 'vendors' table. Vendor passwords are bcrypt hashes,
// same as users.
type Vendor struct {
	ID           uint64
	BusinessName string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	CreatedAt    time.Time
}

type VendorRepo struct{ DB *sql.DB }

func NewVendorRepo(db *sql.DB) *VendorRepo { return &VendorRepo{DB: db} }

const insertVendorSQL = "INSERT INTO vendors (business_name, email, password, phone, address) VALUES (?,?,?,?,?)"
const selectVendorByEmailSQL = "SELECT id,business_name,email,password,phone,address,created_at FROM vendors WHERE email=? LIMIT 1"

// Create hashes the password, inserts the vendor and returns its ID.
func (r *VendorRepo) Create(ctx context.Context, businessName, email, password, phone, address string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx, insertVendorSQL, businessName, email, hash, phone, address)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a vendor by normalized email.
func (r *VendorRepo) GetByEmail(ctx context.Context, email string) (Vendor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var v Vendor
	err := r.DB.QueryRowContext(ctx, selectVendorByEmailSQL, email).
		Scan(&v.ID, &v.BusinessName, &v.Email, &v.PasswordHash, &v.Phone, &v.Address, &v.CreatedAt)
	return v, err
}
