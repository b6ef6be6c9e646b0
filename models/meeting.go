package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Meeting struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string               `json:"title" bson:"title"`
	Agenda    string               `json:"agenda" bson:"agenda"`
	Date      time.Time            `json:"date" bson:"date"`
	Duration  int                  `json:"duration" bson:"duration"` // minutes
	Attendees []primitive.ObjectID `json:"attendees" bson:"attendees"`
	Project   primitive.ObjectID   `json:"project,omitempty" bson:"project,omitempty"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
}
