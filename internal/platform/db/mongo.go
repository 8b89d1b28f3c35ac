package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/tryonce/internal/app/bootstrap"
	"github.com/fatflowers/tryonce/internal/models"
	cfgpkg "github.com/fatflowers/tryonce/pkg/config"
	"github.com/fatflowers/tryonce/pkg/mongolog"
	"github.com/fatflowers/tryonce/pkg/types"
)

// Handle is the process-wide database connection shared by all requests.
type Handle struct {
	Client *mongo.Client
	DB     *mongo.Database

	queryMode types.QueryMode
}

// QueryMode reports how client-built filters treat fields outside the
// collection schema.
func (h *Handle) QueryMode() types.QueryMode { return h.queryMode }

func (h *Handle) Collection(c models.Collection) *mongo.Collection {
	return h.DB.Collection(c.CollectionName())
}

// DatabaseName resolves the database from the URI path, falling back to
// the configured name.
func DatabaseName(uri, fallback string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("invalid mongo uri: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return fallback, nil
}

// NewDB connects once and pings the primary. Any error is fatal for startup.
func NewDB(l *zap.SugaredLogger, cfg *cfgpkg.Config, seq *bootstrap.Sequencer) (*Handle, error) {
	if err := seq.Enter(bootstrap.PhaseConnecting); err != nil {
		return nil, err
	}
	h, err := connect(l, cfg)
	if err != nil {
		seq.Fail(err)
		return nil, err
	}
	return h, nil
}

func connect(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*Handle, error) {
	name, err := DatabaseName(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetServerSelectionTimeout(cfg.Database.ConnectTimeout).
		SetMonitor(mongolog.New(l, cfg.Database.SlowThreshold).CommandMonitor())
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	h := &Handle{Client: client, DB: client.Database(name), queryMode: types.ParseQueryMode(cfg.Database.QueryMode)}
	if cfg.Database.AutoIndex {
		if err := EnsureIndexes(ctx, l, h); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
	}
	l.Infow("MongoDB connected", "db", name, "query_mode", h.queryMode)
	return h, nil
}

var Module = fx.Options(
	fx.Provide(NewDB),
	fx.Invoke(registerDBClose),
)

// EnsureIndexes creates the indexes declared by every model on startup
func EnsureIndexes(ctx context.Context, l *zap.SugaredLogger, h *Handle) error {
	for _, c := range models.All() {
		idx := c.Indexes()
		if len(idx) == 0 {
			continue
		}
		if _, err := h.Collection(c).Indexes().CreateMany(ctx, idx); err != nil {
			l.Errorf("ensure indexes failed for %s: %v", c.CollectionName(), err)
			return fmt.Errorf("failed to ensure indexes for %s: %w", c.CollectionName(), err)
		}
	}
	l.Infow("indexes ensured")
	return nil
}

// registerDBClose ensures the client is disconnected on shutdown
func registerDBClose(lc fx.Lifecycle, l *zap.SugaredLogger, h *Handle) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			l.Infow("closing mongo connection pool")
			return h.Client.Disconnect(ctx)
		},
	})
}
