package handler // handler defines http handlers

import (
	"strconv" // strconv converts strings to numeric types
	"time"    // time parsing for date query parameters

	"github.com/labstack/echo/v4" // echo defines request context types
)

// claimUserID extracts the authenticated user's id stored in the
// context by the JWT middleware.  Numeric JWT claims decode as float64.
func claimUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case uint64:
		return v, true
	case int64:
		return uint64(v), true
	case float64:
		return uint64(v), true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// pathID parses the :id path parameter as a positive integer.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// optUint32 parses an optional unsigned query parameter.  It returns
// nil when the parameter is absent and ok=false when it is present but
// malformed.
func optUint32(c echo.Context, name string) (*uint32, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, false
	}
	v := uint32(n)
	return &v, true
}

// dateFormats lists the layouts accepted for date-valued inputs, most
// specific first.
var dateFormats = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// parseDate parses a date string in any accepted layout, in UTC.
func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// optDate parses an optional date query parameter.  It returns nil when
// the parameter is absent and ok=false when it is present but
// malformed.
func optDate(c echo.Context, name string) (*time.Time, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, true
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
