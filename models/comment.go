package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment attaches to exactly one of Project or Task; the service rejects a
// comment referencing both or neither.
type Comment struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Project   *primitive.ObjectID `json:"project,omitempty" bson:"project,omitempty"`
	Task      *primitive.ObjectID `json:"task,omitempty" bson:"task,omitempty"`
	Author    primitive.ObjectID  `json:"author" bson:"author"`
	Text      string              `json:"text" bson:"text"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
}
