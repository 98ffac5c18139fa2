package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Report handles GET /api/sneakers/report.  It returns the catalog-wide
// counters plus the moment the report was generated.
func (h *SneakerHandler) Report(c echo.Context) error {
	rep, err := h.Repo.Report(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build report"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"report":      rep,
		"report_date": time.Now().UTC().Format(time.RFC3339),
	})
}

// Statistics handles GET /api/sneakers/statistics.  It returns the
// per-brand grouping with count, average price and total stock.
func (h *SneakerHandler) Statistics(c echo.Context) error {
	stats, err := h.Repo.BrandStats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build statistics"})
	}
	return c.JSON(http.StatusOK, echo.Map{"brands": stats})
}
