package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	StartDate   time.Time          `json:"startDate" bson:"startDate"`
	EndDate     time.Time          `json:"endDate" bson:"endDate"`
	CreatedBy   primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
