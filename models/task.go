package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Task struct {
	ID          primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string               `json:"title" bson:"title"`
	Description string               `json:"description" bson:"description"`
	Project     primitive.ObjectID   `json:"project" bson:"project"`
	Departments []primitive.ObjectID `json:"departments" bson:"departments"`
	AssignedTo  []primitive.ObjectID `json:"assignedTo" bson:"assignedTo"`
	Priority    Priority             `json:"priority" bson:"priority"`
	DueDate     time.Time            `json:"dueDate" bson:"dueDate"`
	Status      Status               `json:"status" bson:"status"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// TaskView carries the resolved status plus display context for listings.
type TaskView struct {
	Task          `bson:",inline"`
	ProjectName   string   `json:"projectName,omitempty" bson:"projectName,omitempty"`
	AssigneeNames []string `json:"assigneeNames,omitempty" bson:"assigneeNames,omitempty"`
}
