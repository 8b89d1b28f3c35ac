package handlers

import (
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// GroupTag is the fx value group route groups are collected in.
const GroupTag = `group:"route_groups"`

// RouteGroup is a collaborator mounted under a fixed path prefix.
type RouteGroup interface {
	Prefix() string
	Register(r gin.IRouter)
}

// AsRouteGroup annotates a constructor so its result joins the route group.
func AsRouteGroup(f any) any {
	return fx.Annotate(f, fx.As(new(RouteGroup)), fx.ResultTags(GroupTag))
}

// Mount registers every group under its prefix, in prefix order.
func Mount(r gin.IRouter, groups ...RouteGroup) {
	sorted := append([]RouteGroup(nil), groups...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Prefix() < sorted[j].Prefix() })
	for _, g := range sorted {
		if g == nil {
			continue
		}
		g.Register(r.Group(g.Prefix()))
	}
}

// RegisterFixedRoutes mounts the landing page and the health check.
func RegisterFixedRoutes(r gin.IRouter) {
	r.GET("/", Landing)
	r.GET("/api/health", Health)
	r.HEAD("/api/health", Health)
}

var Module = fx.Options(
	fx.Provide(
		AsRouteGroup(NewAuthRoutes),
		AsRouteGroup(NewProductRoutes),
		AsRouteGroup(NewOrderRoutes),
		AsRouteGroup(NewSalesRoutes),
	),
)
