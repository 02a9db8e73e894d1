package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepoCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("Ann", "a@x.com", sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'a@x.com' for key 'uk_users_email'"))

	_, err = repo.Create(context.Background(), "Ann", "a@x.com", "secret", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoCreateNormalizesEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("Ann", "a@x.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))

	id, err := repo.Create(context.Background(), "Ann", "  A@X.com ", "secret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "created_at"}).
			AddRow(3, "Ann", "a@x.com", "$2a$04$hash", now))

	u, err := repo.GetByEmail(context.Background(), "A@X.com")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), u.ID)
	assert.Equal(t, "Ann", u.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorRepoCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewVendorRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(insertVendorSQL)).
		WithArgs("Acme", "v@x.com", sqlmock.AnyArg(), "", "").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'v@x.com' for key 'uk_vendors_email'"))

	_, err = repo.Create(context.Background(), "Acme", "v@x.com", "secret", "", "", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
