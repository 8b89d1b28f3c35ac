package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem 订单行，价格为下单时快照
type OrderItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Name      string `bson:"name" json:"name"`
	Size      string `bson:"size,omitempty" json:"size,omitempty"`
	Price     int64  `bson:"price" json:"price"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

type ShippingAddress struct {
	FullName   string `bson:"full_name" json:"full_name" binding:"required"`
	Line1      string `bson:"line1" json:"line1" binding:"required"`
	Line2      string `bson:"line2,omitempty" json:"line2,omitempty"`
	City       string `bson:"city" json:"city" binding:"required"`
	PostalCode string `bson:"postal_code" json:"postal_code" binding:"required"`
	Country    string `bson:"country" json:"country" binding:"required"`
}

// Order 用户订单
type Order struct {
	ID              string          `bson:"_id" json:"id"`
	UserID          string          `bson:"user_id" json:"user_id"`
	Items           []OrderItem     `bson:"items" json:"items"`
	Total           int64           `bson:"total" json:"total"`
	Currency        string          `bson:"currency" json:"currency"`
	Status          OrderStatus     `bson:"status" json:"status"`
	ShippingAddress ShippingAddress `bson:"shipping_address" json:"shipping_address"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updated_at"`
}

func (Order) CollectionName() string {
	return "orders"
}

func (Order) Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("idx_user_id_created_at")},
		{Keys: bson.D{{Key: "created_at", Value: 1}}, Options: options.Index().SetName("idx_created_at")},
	}
}

// Counts reports whether the order contributes to sales figures.
func (o *Order) Counts() bool {
	return o != nil && o.Status != OrderStatusCancelled
}
