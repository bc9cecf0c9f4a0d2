package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/YodHeVauHe/ShopWithKylie/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPlaceOrder_RedeemsInsideOrderTransaction(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := repository.NewGormCheckoutStore(gormDB)

	discountID := uuid.New()
	order := &models.Order{
		UserID:      "user-1",
		TotalAmount: 80000,
		Status:      models.OrderStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "discount_codes" SET "uses_count"=uses_count + 1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	err := store.PlaceOrder(context.Background(), order, &discountID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_ExhaustedCodeRollsBackOrder(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := repository.NewGormCheckoutStore(gormDB)

	discountID := uuid.New()
	order := &models.Order{UserID: "user-1", TotalAmount: 80000}

	// No remaining uses: the order insert must never run.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "discount_codes"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.PlaceOrder(context.Background(), order, &discountID)
	assert.ErrorIs(t, err, repository.ErrUsageExhausted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_NoCodeSkipsRedemption(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := repository.NewGormCheckoutStore(gormDB)

	order := &models.Order{UserID: "user-1", TotalAmount: 50000}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	err := store.PlaceOrder(context.Background(), order, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
