package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/YodHeVauHe/ShopWithKylie/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSetDiscount_BatchUpdate(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	updated, err := repo.SetDiscount(context.Background(), ids, 25)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), updated, "returns rows actually updated, not ids requested")
}

func TestSetDiscount_ZeroClears(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.SetDiscount(context.Background(), []uuid.UUID{uuid.New()}, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), updated)
}

func TestFindByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	p, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, p)
}

func TestFindByID_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "category", "price", "stock", "discount"}).
		AddRow(id, "Air Runner", "Sneakers", int64(150000), 30, 20)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(rows)

	p, err := repo.FindByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, "Air Runner", p.Name)
	assert.Equal(t, int64(150000), p.Price)
	assert.Equal(t, 20, p.Discount)
}
