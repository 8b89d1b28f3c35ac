package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSales_Summary(t *testing.T) {
	r := newTestEngine(NewSalesRoutes(stubSales{}, &stubAuth{}, testCfg))
	body := `{"start_date":"2024-01-01","end_date":"2024-01-31","statistic_types":["daily_revenue"]}`

	require.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodPost, "/api/sales/summary", body, "").Code)
	require.Equal(t, http.StatusForbidden, do(t, r, http.MethodPost, "/api/sales/summary", body, "customer-token").Code)

	w := do(t, r, http.MethodPost, "/api/sales/summary", body, "admin-token")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"start_date":"2024-01-01"`)

	w = do(t, r, http.MethodPost, "/api/sales/summary", `{"start_date":"2024-02-01","end_date":"2024-01-01"}`, "admin-token")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/sales/summary", `{"end_date":"2024-01-01"}`, "admin-token")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
