package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/tryonce/internal/app/service/catalog"
	"github.com/fatflowers/tryonce/pkg/response"
	"github.com/fatflowers/tryonce/pkg/types"
)

var productErrors = statusMap{
	{catalog.ErrProductNotFound, http.StatusNotFound},
	{types.ErrUnknownFilterField, http.StatusBadRequest},
	{types.ErrInvalidFilter, http.StatusBadRequest},
}

type ProductRoutes struct {
	svc catalog.Catalog
}

func NewProductRoutes(svc catalog.Catalog) *ProductRoutes {
	return &ProductRoutes{svc: svc}
}

func (p *ProductRoutes) Prefix() string { return "/api/products" }

func (p *ProductRoutes) Register(r gin.IRouter) {
	r.GET("", p.list)
	r.GET("/", p.list)
	r.POST("/search", p.search)
	r.GET("/categories", p.categories)
	r.GET("/:id", p.get)
}

// @Summary      List products
// @Tags         Products
// @Produce      json
// @Param        category   query  string  false  "Category"
// @Param        q          query  string  false  "Name search"
// @Param        from       query  int     false  "Offset"
// @Param        size       query  int     false  "Page size"
// @Param        sort_by    query  string  false  "Sort field"
// @Param        sort_order query  string  false  "asc or desc"
// @Success      200  {object}  handlers.RespProductList
// @Router       /api/products [get]
func (p *ProductRoutes) list(c *gin.Context) {
	var req catalog.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}
	p.respondList(c, &req)
}

// @Summary      Search products
// @Description  Like list, with structured filters restricted to the product schema
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        request body catalog.ListRequest true "Filters and paging"
// @Success      200  {object}  handlers.RespProductList
// @Router       /api/products/search [post]
func (p *ProductRoutes) search(c *gin.Context) {
	var req catalog.ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	p.respondList(c, &req)
}

func (p *ProductRoutes) respondList(c *gin.Context, req *catalog.ListRequest) {
	res, err := p.svc.List(c.Request.Context(), req)
	if err != nil {
		fail(c, productErrors, err)
		return
	}
	c.JSON(http.StatusOK, response.OKT(res))
}

// @Summary      Product categories
// @Tags         Products
// @Produce      json
// @Success      200  {object}  handlers.RespStrings
// @Router       /api/products/categories [get]
func (p *ProductRoutes) categories(c *gin.Context) {
	res, err := p.svc.Categories(c.Request.Context())
	if err != nil {
		fail(c, productErrors, err)
		return
	}
	c.JSON(http.StatusOK, response.OKT(res))
}

// @Summary      Get product
// @Tags         Products
// @Produce      json
// @Param        id   path  string  true  "Product ID"
// @Success      200  {object}  handlers.RespProduct
// @Router       /api/products/{id} [get]
func (p *ProductRoutes) get(c *gin.Context) {
	res, err := p.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, productErrors, err)
		return
	}
	c.JSON(http.StatusOK, response.OKT(res))
}
