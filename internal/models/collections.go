package models

import "go.mongodb.org/mongo-driver/mongo"

// Collection is implemented by every persisted document type.
type Collection interface {
	CollectionName() string
	Indexes() []mongo.IndexModel
}

// All lists the collections whose indexes are ensured at startup.
func All() []Collection {
	return []Collection{
		User{},
		Product{},
		Order{},
	}
}
