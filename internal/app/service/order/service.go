package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/tryonce/internal/app/service/catalog"
	"github.com/fatflowers/tryonce/internal/models"
	"github.com/fatflowers/tryonce/internal/platform/db"
	"github.com/fatflowers/tryonce/pkg/logctx"
	"github.com/fatflowers/tryonce/pkg/tool"
)

var (
	ErrEmptyOrder    = errors.New("order has no items")
	ErrInvalidItem   = errors.New("invalid order item")
	ErrOutOfStock    = errors.New("product out of stock")
	ErrMixedCurrency = errors.New("order items use different currencies")
	ErrOrderNotFound = errors.New("order not found")
)

const maxItemsPerOrder = 50

type ItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateRequest struct {
	Items           []ItemRequest          `json:"items" binding:"required,dive"`
	ShippingAddress models.ShippingAddress `json:"shipping_address" binding:"required"`
}

// Manager owns the order lifecycle for authenticated users.
type Manager interface {
	Create(ctx context.Context, userID string, req *CreateRequest) (*models.Order, error)
	List(ctx context.Context, userID string) ([]*models.Order, error)
	Get(ctx context.Context, userID, id string) (*models.Order, error)
}

type Service struct {
	orders   *mongo.Collection
	products *mongo.Collection
	catalog  catalog.Catalog
	log      *zap.SugaredLogger
}

func NewService(h *db.Handle, cat catalog.Catalog, log *zap.SugaredLogger) *Service {
	return &Service{
		orders:   h.Collection(models.Order{}),
		products: h.Collection(models.Product{}),
		catalog:  cat,
		log:      log,
	}
}

// BuildOrder prices the requested items against the catalog snapshot.
// Quantities for the same product are merged.
func BuildOrder(userID string, req *CreateRequest, products map[string]*models.Product, now time.Time) (*models.Order, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if len(req.Items) > maxItemsPerOrder {
		return nil, fmt.Errorf("%w: at most %d lines", ErrInvalidItem, maxItemsPerOrder)
	}

	type lineKey struct{ product, size string }
	qty := map[lineKey]int{}
	var keys []lineKey
	for _, it := range req.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, ErrInvalidItem
		}
		k := lineKey{it.ProductID, it.Size}
		if _, ok := qty[k]; !ok {
			keys = append(keys, k)
		}
		qty[k] += it.Quantity
	}

	o := &models.Order{
		ID:              tool.GenerateUUIDV7(),
		UserID:          userID,
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, k := range keys {
		p, ok := products[k.product]
		if !ok {
			return nil, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, k.product)
		}
		if k.size != "" && len(p.Sizes) > 0 && !lo.Contains(p.Sizes, k.size) {
			return nil, fmt.Errorf("%w: size %s not offered for %s", ErrInvalidItem, k.size, p.ID)
		}
		if !p.InStock(qty[k]) {
			return nil, fmt.Errorf("%w: %s", ErrOutOfStock, p.ID)
		}
		if o.Currency == "" {
			o.Currency = p.Currency
		} else if o.Currency != p.Currency {
			return nil, ErrMixedCurrency
		}
		o.Items = append(o.Items, models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Size:      k.size,
			Price:     p.Price,
			Quantity:  qty[k],
		})
		o.Total += p.Price * int64(qty[k])
	}
	return o, nil
}

func (s *Service) Create(ctx context.Context, userID string, req *CreateRequest) (*models.Order, error) {
	ids := lo.Map(req.Items, func(it ItemRequest, _ int) string { return it.ProductID })
	products, err := s.catalog.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	o, err := BuildOrder(userID, req, products, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	reserved, err := s.reserveStock(ctx, o.Items)
	if err != nil {
		s.releaseStock(ctx, reserved)
		return nil, err
	}
	if _, err := s.orders.InsertOne(ctx, o); err != nil {
		s.releaseStock(ctx, reserved)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("order created", "order_id", o.ID, "total", o.Total, "items", len(o.Items))
	return o, nil
}

// reserveStock decrements stock line by line, stopping at the first line
// that cannot be satisfied. It returns the lines already reserved.
func (s *Service) reserveStock(ctx context.Context, items []models.OrderItem) ([]models.OrderItem, error) {
	done := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		res, err := s.products.UpdateOne(ctx,
			bson.D{{Key: "_id", Value: it.ProductID}, {Key: "stock", Value: bson.M{"$gte": it.Quantity}}},
			bson.D{{Key: "$inc", Value: bson.M{"stock": -it.Quantity}}},
		)
		if err != nil {
			return done, fmt.Errorf("failed to reserve stock: %w", err)
		}
		if res.ModifiedCount == 0 {
			return done, fmt.Errorf("%w: %s", ErrOutOfStock, it.ProductID)
		}
		done = append(done, it)
	}
	return done, nil
}

func (s *Service) releaseStock(ctx context.Context, items []models.OrderItem) {
	for _, it := range items {
		if _, err := s.products.UpdateOne(ctx,
			bson.D{{Key: "_id", Value: it.ProductID}},
			bson.D{{Key: "$inc", Value: bson.M{"stock": it.Quantity}}},
		); err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to release stock for %s: %v", it.ProductID, err)
		}
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]*models.Order, error) {
	cur, err := s.orders.Find(ctx,
		bson.D{{Key: "user_id", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	rows := []*models.Order{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*models.Order, error) {
	// order ids are always UUIDv7, anything else cannot match
	if !tool.IsUUID(id) {
		return nil, ErrOrderNotFound
	}
	var o models.Order
	err := s.orders.FindOne(ctx, bson.D{{Key: "_id", Value: id}, {Key: "user_id", Value: userID}}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &o, nil
}

// Module exposes the order service via Fx.
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewService, fx.As(new(Manager)))),
)
