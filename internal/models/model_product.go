package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fatflowers/tryonce/pkg/types"
)

// Product 商品
type Product struct {
	ID          string   `bson:"_id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description" json:"description"`
	Brand       string   `bson:"brand" json:"brand"`
	Category    string   `bson:"category" json:"category"`
	Images      []string `bson:"images" json:"images"`
	Sizes       []string `bson:"sizes" json:"sizes"`
	// Price 价格，单位为分
	Price     int64     `bson:"price" json:"price"`
	Currency  string    `bson:"currency" json:"currency"`
	Stock     int       `bson:"stock" json:"stock"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ProductSchema lists the fields clients may filter and sort on.
var ProductSchema = types.NewSchema("name", "brand", "category", "price", "currency", "stock", "sizes", "created_at")

func (Product) CollectionName() string {
	return "products"
}

func (Product) Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}}, Options: options.Index().SetName("idx_category_price")},
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}}, Options: options.Index().SetName("idx_text")},
	}
}

func (p *Product) InStock(qty int) bool {
	return p != nil && qty > 0 && p.Stock >= qty
}
