package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/tryonce/internal/app/api/middleware"
	"github.com/fatflowers/tryonce/internal/app/service/auth"
	"github.com/fatflowers/tryonce/internal/app/service/catalog"
	"github.com/fatflowers/tryonce/internal/app/service/order"
	"github.com/fatflowers/tryonce/pkg/config"
	"github.com/fatflowers/tryonce/pkg/response"
)

var orderErrors = statusMap{
	{order.ErrEmptyOrder, http.StatusBadRequest},
	{order.ErrInvalidItem, http.StatusBadRequest},
	{order.ErrMixedCurrency, http.StatusBadRequest},
	{catalog.ErrProductNotFound, http.StatusBadRequest},
	{order.ErrOutOfStock, http.StatusConflict},
	{order.ErrOrderNotFound, http.StatusNotFound},
}

type OrderRoutes struct {
	svc        order.Manager
	verifier   middleware.TokenVerifier
	cookieName string
}

func NewOrderRoutes(svc order.Manager, authn auth.Authenticator, cfg *config.Config) *OrderRoutes {
	return &OrderRoutes{svc: svc, verifier: authn, cookieName: cfg.Auth.CookieName}
}

func (o *OrderRoutes) Prefix() string { return "/api/orders" }

func (o *OrderRoutes) Register(r gin.IRouter) {
	r.Use(middleware.RequireAuth(o.verifier, o.cookieName))
	r.POST("", o.create)
	r.POST("/", o.create)
	r.GET("", o.list)
	r.GET("/", o.list)
	r.GET("/:id", o.get)
}

// @Summary      Place order
// @Description  Prices items from the catalog and reserves stock
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        request body order.CreateRequest true "Order"
// @Success      201  {object}  handlers.RespOrder
// @Router       /api/orders [post]
func (o *OrderRoutes) create(c *gin.Context) {
	var req order.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	res, err := o.svc.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		fail(c, orderErrors, err)
		return
	}
	c.JSON(http.StatusCreated, response.OKT(res))
}

// @Summary      My orders
// @Tags         Orders
// @Produce      json
// @Success      200  {object}  handlers.RespOrderList
// @Router       /api/orders [get]
func (o *OrderRoutes) list(c *gin.Context) {
	res, err := o.svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, orderErrors, err)
		return
	}
	c.JSON(http.StatusOK, response.OKT(res))
}

// @Summary      Get order
// @Tags         Orders
// @Produce      json
// @Param        id   path  string  true  "Order ID"
// @Success      200  {object}  handlers.RespOrder
// @Router       /api/orders/{id} [get]
func (o *OrderRoutes) get(c *gin.Context) {
	res, err := o.svc.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		fail(c, orderErrors, err)
		return
	}
	c.JSON(http.StatusOK, response.OKT(res))
}
