package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"

	"github.com/fatflowers/tryonce/internal/models"
	"github.com/fatflowers/tryonce/internal/platform/db"
)

type StatisticType string

const (
	StatisticTypeDailyOrderCount StatisticType = "daily_order_count"
	StatisticTypeDailyRevenue    StatisticType = "daily_revenue"
	StatisticTypeTotalRevenue    StatisticType = "total_revenue"
	StatisticTypeTopProducts     StatisticType = "top_products"
)

var statisticTypes = []StatisticType{
	StatisticTypeDailyOrderCount,
	StatisticTypeDailyRevenue,
	StatisticTypeTotalRevenue,
	StatisticTypeTopProducts,
}

var ErrInvalidRequest = errors.New("invalid sales request")

const (
	maxRangeDays = 366
	topProducts  = 10
)

type SummaryRequest struct {
	StartDate      string          `json:"start_date" binding:"required"`
	EndDate        string          `json:"end_date" binding:"required"`
	StatisticTypes []StatisticType `json:"statistic_types"`
}

type SummaryDataItem struct {
	Date  string `bson:"date" json:"date,omitempty"`
	Label string `bson:"label" json:"label,omitempty"`
	Value int64  `bson:"value" json:"value"`
	// Value2 carries units sold for top_products.
	Value2 int64 `bson:"value2" json:"value2,omitempty"`
}

type SummaryResponse struct {
	StartDate string                              `json:"start_date"`
	EndDate   string                              `json:"end_date"`
	DataItems map[StatisticType][]SummaryDataItem `json:"data_items"`
}

// Reporter answers sales questions over the order collection.
type Reporter interface {
	Summary(ctx context.Context, req *SummaryRequest) (*SummaryResponse, error)
}

type Service struct {
	orders *mongo.Collection
}

func NewService(h *db.Handle) *Service {
	return &Service{orders: h.Collection(models.Order{})}
}

// Window is the half-open [From, To) time range of a summary.
type Window struct {
	From time.Time
	To   time.Time
}

// Validate parses the dates (inclusive, YYYY-MM-DD, UTC) and fills in the
// default statistic types.
func (r *SummaryRequest) Validate() (Window, error) {
	start, err := time.Parse(time.DateOnly, r.StartDate)
	if err != nil {
		return Window{}, fmt.Errorf("%w: start_date: %v", ErrInvalidRequest, err)
	}
	end, err := time.Parse(time.DateOnly, r.EndDate)
	if err != nil {
		return Window{}, fmt.Errorf("%w: end_date: %v", ErrInvalidRequest, err)
	}
	if end.Before(start) {
		return Window{}, fmt.Errorf("%w: end_date before start_date", ErrInvalidRequest)
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return Window{}, fmt.Errorf("%w: range exceeds %d days", ErrInvalidRequest, maxRangeDays)
	}
	if len(r.StatisticTypes) == 0 {
		r.StatisticTypes = statisticTypes
	}
	r.StatisticTypes = lo.Uniq(r.StatisticTypes)
	for _, st := range r.StatisticTypes {
		if !lo.Contains(statisticTypes, st) {
			return Window{}, fmt.Errorf("%w: unknown statistic type %s", ErrInvalidRequest, st)
		}
	}
	return Window{From: start, To: end.AddDate(0, 0, 1)}, nil
}

func matchStage(w Window) bson.D {
	return bson.D{{Key: "$match", Value: bson.D{
		{Key: "created_at", Value: bson.M{"$gte": w.From, "$lt": w.To}},
		{Key: "status", Value: bson.M{"$ne": models.OrderStatusCancelled}},
	}}}
}

var dayExpr = bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}}

// Pipeline returns the aggregation for one statistic type.
func Pipeline(st StatisticType, w Window) (mongo.Pipeline, error) {
	switch st {
	case StatisticTypeDailyOrderCount:
		return mongo.Pipeline{
			matchStage(w),
			{{Key: "$group", Value: bson.M{"_id": dayExpr, "value": bson.M{"$sum": 1}}}},
			{{Key: "$project", Value: bson.M{"_id": 0, "date": "$_id", "value": 1}}},
			{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
		}, nil
	case StatisticTypeDailyRevenue:
		return mongo.Pipeline{
			matchStage(w),
			{{Key: "$group", Value: bson.M{
				"_id":   bson.M{"date": dayExpr, "currency": "$currency"},
				"value": bson.M{"$sum": "$total"},
			}}},
			{{Key: "$project", Value: bson.M{"_id": 0, "date": "$_id.date", "label": "$_id.currency", "value": 1}}},
			{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}, {Key: "label", Value: 1}}}},
		}, nil
	case StatisticTypeTotalRevenue:
		return mongo.Pipeline{
			matchStage(w),
			{{Key: "$group", Value: bson.M{"_id": "$currency", "value": bson.M{"$sum": "$total"}}}},
			{{Key: "$project", Value: bson.M{"_id": 0, "label": "$_id", "value": 1}}},
			{{Key: "$sort", Value: bson.D{{Key: "label", Value: 1}}}},
		}, nil
	case StatisticTypeTopProducts:
		return mongo.Pipeline{
			matchStage(w),
			{{Key: "$unwind", Value: "$items"}},
			{{Key: "$group", Value: bson.M{
				"_id":    "$items.product_id",
				"name":   bson.M{"$first": "$items.name"},
				"value":  bson.M{"$sum": bson.M{"$multiply": bson.A{"$items.price", "$items.quantity"}}},
				"value2": bson.M{"$sum": "$items.quantity"},
			}}},
			{{Key: "$sort", Value: bson.D{{Key: "value", Value: -1}, {Key: "_id", Value: 1}}}},
			{{Key: "$limit", Value: topProducts}},
			{{Key: "$project", Value: bson.M{"_id": 0, "label": "$name", "value": 1, "value2": 1}}},
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown statistic type %s", ErrInvalidRequest, st)
	}
}

func (s *Service) aggregate(ctx context.Context, st StatisticType, w Window) ([]SummaryDataItem, error) {
	p, err := Pipeline(st, w)
	if err != nil {
		return nil, err
	}
	cur, err := s.orders.Aggregate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", st, err)
	}
	out := []SummaryDataItem{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", st, err)
	}
	return out, nil
}

func (s *Service) Summary(ctx context.Context, req *SummaryRequest) (*SummaryResponse, error) {
	w, err := req.Validate()
	if err != nil {
		return nil, err
	}

	// every worker sends exactly once, on one of the two buffered channels
	errChan := make(chan error, len(req.StatisticTypes))
	resChan := make(chan *lo.Entry[StatisticType, []SummaryDataItem], len(req.StatisticTypes))

	for _, st := range req.StatisticTypes {
		go func(st StatisticType) {
			res, err := s.aggregate(ctx, st, w)
			if err != nil {
				errChan <- err
				return
			}
			resChan <- &lo.Entry[StatisticType, []SummaryDataItem]{Key: st, Value: res}
		}(st)
	}

	results := make(map[StatisticType][]SummaryDataItem, len(req.StatisticTypes))
	for i := 0; i < len(req.StatisticTypes); i++ {
		select {
		case err := <-errChan:
			return nil, err
		case entry := <-resChan:
			results[entry.Key] = entry.Value
		}
	}
	return &SummaryResponse{StartDate: req.StartDate, EndDate: req.EndDate, DataItems: results}, nil
}

// Module exposes the sales service via Fx.
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewService, fx.As(new(Reporter)))),
)
