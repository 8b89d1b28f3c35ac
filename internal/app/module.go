package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fatflowers/tryonce/internal/app/api/handlers"
	"github.com/fatflowers/tryonce/internal/app/api/server"
	"github.com/fatflowers/tryonce/internal/app/bootstrap"
	"github.com/fatflowers/tryonce/internal/app/service/auth"
	"github.com/fatflowers/tryonce/internal/app/service/catalog"
	"github.com/fatflowers/tryonce/internal/app/service/order"
	"github.com/fatflowers/tryonce/internal/app/service/sales"
	"github.com/fatflowers/tryonce/internal/platform/db"
	"github.com/fatflowers/tryonce/pkg/config"
	"github.com/fatflowers/tryonce/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	bootstrap.Module,
	db.Module,
	auth.Module,
	catalog.Module,
	order.Module,
	sales.Module,
	handlers.Module,
	server.Module,
)

// New builds the application. opts are applied ahead of Module, so their
// invokes run before the database is dialed.
func New(opts ...fx.Option) *fx.App {
	return fx.New(append(opts, Module)...)
}
