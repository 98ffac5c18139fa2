package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sneaker-store/internal/repository"
)

func newSneakerHandlerMock(t *testing.T) (*SneakerHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSneakerHandler(repository.NewSneakerRepo(db)), mock
}

func testSneakerRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "brand", "model", "size", "color", "price_cents",
		"stock_quantity", "release_date", "is_limited_edition", "created_at", "updated_at",
	}).AddRow(1, "Air Max 90", "Nike", "Air Max", 42, "white", 12999, 5, now, false, now, now)
}

func TestGetSneakerInvalidID(t *testing.T) {
	h, _ := newSneakerHandlerMock(t)

	c, rec := jsonCtx(t, http.MethodGet, "/api/sneakers/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSneakerNotFound(t *testing.T) {
	h, mock := newSneakerHandlerMock(t)

	mock.ExpectQuery("FROM sneakers WHERE id =").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	c, rec := jsonCtx(t, http.MethodGet, "/api/sneakers/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSneakerValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"brand":"Nike","model":"Air Max","size":42}`, "name, brand and model are required"},
		{"missing size", `{"name":"Air Max 90","brand":"Nike","model":"Air Max"}`, "size is required"},
		{"bad release date", `{"name":"Air Max 90","brand":"Nike","model":"Air Max","size":42,"release_date":"someday"}`, "invalid release_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newSneakerHandlerMock(t)
			c, rec := jsonCtx(t, http.MethodPost, "/api/sneakers", tc.body)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestCreateSneakerIgnoresClientID(t *testing.T) {
	h, mock := newSneakerHandlerMock(t)

	mock.ExpectExec("INSERT INTO sneakers").
		WithArgs("Air Max 90", "Nike", "Air Max", uint32(42), "white",
			uint32(12999), uint32(5), sqlmock.AnyArg(), false).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("FROM sneakers WHERE id =").
		WithArgs(uint64(1)).
		WillReturnRows(testSneakerRows())

	body := `{"id":777,"name":"Air Max 90","brand":"Nike","model":"Air Max","size":42,
		"color":"white","price_cents":12999,"stock_quantity":5,"release_date":"2026-03-26"}`
	c, rec := jsonCtx(t, http.MethodPost, "/api/sneakers", body)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Item struct {
			ID uint64 `json:"id"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.Item.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSneakerIDMismatch(t *testing.T) {
	h, _ := newSneakerHandlerMock(t)

	body := `{"id":3,"name":"Air Max 90","brand":"Nike","model":"Air Max","size":42}`
	c, rec := jsonCtx(t, http.MethodPut, "/api/sneakers/2", body)
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "id mismatch")
}

func TestDeleteSneakerNotFound(t *testing.T) {
	h, mock := newSneakerHandlerMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sneakers WHERE id = ?")).
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := jsonCtx(t, http.MethodDelete, "/api/sneakers/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRejectsMalformedBound(t *testing.T) {
	h, _ := newSneakerHandlerMock(t)

	c, rec := jsonCtx(t, http.MethodGet, "/api/sneakers/search?minPrice=cheap", "")
	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid minPrice")
}

func TestSearchPassesFiltersThrough(t *testing.T) {
	h, mock := newSneakerHandlerMock(t)

	mock.ExpectQuery("LOWER").
		WithArgs("%nike%", uint32(10000), uint32(20000)).
		WillReturnRows(testSneakerRows())

	c, rec := jsonCtx(t, http.MethodGet, "/api/sneakers/search?brand=Nike&minPrice=10000&maxPrice=20000", "")
	require.NoError(t, h.Search(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []struct {
			Brand string `json:"brand"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Nike", resp.Items[0].Brand)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportIncludesGenerationTimestamp(t *testing.T) {
	h, mock := newSneakerHandlerMock(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{
			"total", "in_stock", "out_of_stock", "limited", "avg_price", "inventory_value",
		}).AddRow(10, 7, 3, 2, 14999.5, 1049965))

	c, rec := jsonCtx(t, http.MethodGet, "/api/sneakers/report", "")
	require.NoError(t, h.Report(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Report struct {
			TotalSneakers int64 `json:"total_sneakers"`
		} `json:"report"`
		ReportDate time.Time `json:"report_date"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.Report.TotalSneakers)
	assert.WithinDuration(t, time.Now(), resp.ReportDate, time.Minute)
	require.NoError(t, mock.ExpectationsWereMet())
}
