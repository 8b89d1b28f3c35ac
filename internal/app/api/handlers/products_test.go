package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatflowers/tryonce/pkg/types"
)

func TestProducts_ListBindsQuery(t *testing.T) {
	cat := &stubCatalog{}
	r := newTestEngine(NewProductRoutes(cat))

	w := do(t, r, http.MethodGet, "/api/products?category=women&q=kurta&from=20&size=10&sort_by=price&sort_order=asc", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "women", cat.lastList.Category)
	require.Equal(t, "kurta", cat.lastList.Query)
	require.Equal(t, 20, cat.lastList.From)
	require.Equal(t, 10, cat.lastList.Size)
	require.Equal(t, "price", cat.lastList.SortBy)
	require.Contains(t, w.Body.String(), `"total":1`)
}

func TestProducts_SearchRejectsUnknownFilterField(t *testing.T) {
	cat := &stubCatalog{listErr: fmt.Errorf("%w: password_hash", types.ErrUnknownFilterField)}
	r := newTestEngine(NewProductRoutes(cat))

	w := do(t, r, http.MethodPost, "/api/products/search", `{"filters":[{"field":"password_hash","operator":"eq","values":["x"]}]}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "password_hash")
}

func TestProducts_CategoriesAndGet(t *testing.T) {
	r := newTestEngine(NewProductRoutes(&stubCatalog{}))

	w := do(t, r, http.MethodGet, "/api/products/categories", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `["men","women"]`)

	w = do(t, r, http.MethodGet, "/api/products/p1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"name":"Kurta"`)

	w = do(t, r, http.MethodGet, "/api/products/missing", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "product not found")
}
