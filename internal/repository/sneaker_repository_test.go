package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sneaker-store/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func sneakerRows(ids ...uint64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "brand", "model", "size", "color", "price_cents",
		"stock_quantity", "release_date", "is_limited_edition", "created_at", "updated_at",
	})
	now := time.Now()
	for _, id := range ids {
		rows.AddRow(id, "Air Max 90", "Nike", "Air Max", 42, "white", 12999, 5, now, false, now, now)
	}
	return rows
}

func mustSneaker(id uint64) model.Sneaker {
	return model.Sneaker{
		ID: id, Name: "Air Max 90", Brand: "Nike", Model: "Air Max",
		Size: 42, Color: "white", PriceCents: 12999, StockQuantity: 5,
	}
}

func TestSneakerGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSneakerRepo(db)

	mock.ExpectQuery("SELECT .+ FROM sneakers WHERE id = ?").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSneakerUpdateMissingRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSneakerRepo(db)

	mock.ExpectExec("UPDATE sneakers").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM sneakers WHERE id = ?)")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.Update(context.Background(), mustSneaker(7))
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSneakerUpdateNoopRowStillSucceeds(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSneakerRepo(db)

	// Zero affected rows but the row exists: MySQL reports no-op
	// updates this way, and that is not an error.
	mock.ExpectExec("UPDATE sneakers").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM sneakers WHERE id = ?)")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.Update(context.Background(), mustSneaker(7))
	assert.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSneakerDeleteNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSneakerRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sneakers WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUpdateLocksAndMapsMissingRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSneakerRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name, price_cents, stock_quantity FROM sneakers WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "price_cents", "stock_quantity"}).
			AddRow("Air Max 90", 12999, 5))
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(uint64(2)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	name, price, stock, err := repo.GetForUpdateTx(context.Background(), tx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Air Max 90", name)
	assert.Equal(t, uint32(12999), price)
	assert.Equal(t, uint32(5), stock)

	_, _, _, err = repo.GetForUpdateTx(context.Background(), tx, 2)
	assert.ErrorIs(t, err, ErrUnknownSneaker)

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStockGuardRejectsOversell(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSneakerRepo(db)

	decrement := regexp.QuoteMeta("UPDATE sneakers SET stock_quantity = stock_quantity - ? WHERE id = ? AND stock_quantity >= ?")

	mock.ExpectBegin()
	mock.ExpectExec(decrement).
		WithArgs(uint32(3), uint64(1), uint32(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Guard fails: the WHERE clause matched nothing, stock untouched.
	mock.ExpectExec(decrement).
		WithArgs(uint32(6), uint64(1), uint32(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	require.NoError(t, repo.DecrementStockTx(context.Background(), tx, 1, 3))
	assert.ErrorIs(t, repo.DecrementStockTx(context.Background(), tx, 1, 6), ErrOutOfStock)

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchAppliesInclusiveBounds(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSneakerRepo(db)

	minPrice, maxPrice := uint32(10000), uint32(20000)
	minSize := uint32(40)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(brand) LIKE ? AND price_cents >= ? AND price_cents <= ? AND size >= ? ORDER BY id")).
		WithArgs("%nike%", minPrice, maxPrice, minSize).
		WillReturnRows(sneakerRows(1, 2))

	out, err := repo.Search(context.Background(), SneakerSearchQuery{
		Brand:         "Nike",
		MinPriceCents: &minPrice,
		MaxPriceCents: &maxPrice,
		MinSize:       &minSize,
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchWithoutFiltersReturnsAll(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSneakerRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE 1=1 ORDER BY id")).
		WillReturnRows(sneakerRows(1, 2, 3))

	out, err := repo.Search(context.Background(), SneakerSearchQuery{})
	require.NoError(t, err)
	assert.Len(t, out, 3)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportScansAggregates(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSneakerRepo(db)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{
			"total", "in_stock", "out_of_stock", "limited", "avg_price", "inventory_value",
		}).AddRow(10, 7, 3, 2, 14999.5, 1049965))

	rep, err := repo.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), rep.TotalSneakers)
	assert.Equal(t, int64(7), rep.InStock)
	assert.Equal(t, int64(3), rep.OutOfStock)
	assert.Equal(t, int64(2), rep.LimitedEdition)
	assert.InDelta(t, 14999.5, rep.AveragePriceCents, 0.001)
	assert.Equal(t, uint64(1049965), rep.InventoryValueCents)
	require.NoError(t, mock.ExpectationsWereMet())
}
