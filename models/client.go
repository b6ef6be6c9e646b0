package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Client struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Phone     string             `json:"phone" bson:"phone"`
	Company   string             `json:"company" bson:"company"`
	Address   string             `json:"address" bson:"address"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
