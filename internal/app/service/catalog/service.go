package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/tryonce/internal/models"
	"github.com/fatflowers/tryonce/internal/platform/db"
	"github.com/fatflowers/tryonce/pkg/logctx"
	"github.com/fatflowers/tryonce/pkg/types"
)

var ErrProductNotFound = errors.New("product not found")

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListRequest struct {
	Filters   []*types.CommonFilter `json:"filters" form:"-"`
	Category  string                `json:"category" form:"category"`
	Query     string                `json:"q" form:"q"`
	From      int                   `json:"from" form:"from"`
	Size      int                   `json:"size" form:"size"`
	SortBy    string                `json:"sort_by" form:"sort_by"`
	SortOrder string                `json:"sort_order" form:"sort_order"`
}

type ListResponse struct {
	Items []*models.Product `json:"items"`
	Total int64             `json:"total"`
}

// Catalog is the read side of the product collection.
type Catalog interface {
	List(ctx context.Context, req *ListRequest) (*ListResponse, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	GetMany(ctx context.Context, ids []string) (map[string]*models.Product, error)
}

type Service struct {
	products *mongo.Collection
	mode     types.QueryMode
	log      *zap.SugaredLogger
}

func NewService(h *db.Handle, log *zap.SugaredLogger) *Service {
	return &Service{products: h.Collection(models.Product{}), mode: h.QueryMode(), log: log}
}

// Normalize clamps paging and validates sorting. An unknown sort field is an
// error in throw mode and falls back to created_at otherwise.
func (r *ListRequest) Normalize(mode types.QueryMode) error {
	if r.Size <= 0 {
		r.Size = defaultPageSize
	}
	if r.Size > maxPageSize {
		r.Size = maxPageSize
	}
	if r.From < 0 {
		r.From = 0
	}
	if r.SortBy == "" {
		r.SortBy = "created_at"
	}
	if !models.ProductSchema.Has(r.SortBy) {
		if mode == types.QueryModeThrow {
			return fmt.Errorf("%w: %s", types.ErrUnknownFilterField, r.SortBy)
		}
		r.SortBy = "created_at"
	}
	if r.SortOrder != "asc" {
		r.SortOrder = "desc"
	}
	return nil
}

// Filter translates the request into a MongoDB filter.
func (r *ListRequest) Filter(mode types.QueryMode) (bson.D, error) {
	f, err := types.BuildFilter(r.Filters, models.ProductSchema, mode)
	if err != nil {
		return nil, err
	}
	if r.Category != "" {
		f = append(f, bson.E{Key: "category", Value: r.Category})
	}
	if r.Query != "" {
		f = append(f, bson.E{Key: "name", Value: bson.M{"$regex": regexp.QuoteMeta(r.Query), "$options": "i"}})
	}
	return f, nil
}

func (s *Service) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if err := req.Normalize(s.mode); err != nil {
		return nil, err
	}
	filter, err := req.Filter(s.mode)
	if err != nil {
		return nil, err
	}

	total, err := s.products.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	dir := -1
	if req.SortOrder == "asc" {
		dir = 1
	}
	opts := options.Find().
		SetSkip(int64(req.From)).
		SetLimit(int64(req.Size)).
		SetSort(bson.D{{Key: req.SortBy, Value: dir}, {Key: "_id", Value: dir}})
	cur, err := s.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	rows := []*models.Product{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Debugw("products listed", "total", total, "from", req.From, "size", req.Size)
	return &ListResponse{Items: rows, Total: total}, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	raw, err := s.products.Distinct(ctx, "category", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	out := lo.FilterMap(raw, func(v interface{}, _ int) (string, bool) {
		str, ok := v.(string)
		return str, ok && str != ""
	})
	sort.Strings(out)
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.products.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &p, nil
}

func (s *Service) GetMany(ctx context.Context, ids []string) (map[string]*models.Product, error) {
	ids = lo.Uniq(ids)
	cur, err := s.products.Find(ctx, bson.D{{Key: "_id", Value: bson.M{"$in": ids}}})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	var rows []*models.Product
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return lo.KeyBy(rows, func(p *models.Product) string { return p.ID }), nil
}

// Module exposes the catalog service via Fx.
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewService, fx.As(new(Catalog)))),
)
