package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID            primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string               `json:"name" bson:"name"`
	Description   string               `json:"description" bson:"description"`
	Client        primitive.ObjectID   `json:"client" bson:"client"`
	Departments   []primitive.ObjectID `json:"departments" bson:"departments"`
	Members       []primitive.ObjectID `json:"members" bson:"members"`
	StartDate     time.Time            `json:"startDate" bson:"startDate"`
	DueDate       time.Time            `json:"dueDate" bson:"dueDate"`
	ProjectBudget float64              `json:"projectBudget" bson:"projectBudget"`
	Status        Status               `json:"status" bson:"status"`
	Priority      Priority             `json:"priority" bson:"priority"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// ProjectUpdate carries a partial project update. The budget is a pointer so
// an explicit zero can be told apart from an omitted field.
type ProjectUpdate struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Client        primitive.ObjectID   `json:"client"`
	Departments   []primitive.ObjectID `json:"departments"`
	Members       []primitive.ObjectID `json:"members"`
	StartDate     time.Time            `json:"startDate"`
	DueDate       time.Time            `json:"dueDate"`
	ProjectBudget *float64             `json:"projectBudget"`
	Status        Status               `json:"status"`
	Priority      Priority             `json:"priority"`
}

// ProjectView is the listing shape returned to clients: status resolved from
// dates, progress summarized from task counts, client reference flattened to a
// single id plus display name.
type ProjectView struct {
	Project        `bson:",inline"`
	ClientName     string `json:"clientName,omitempty" bson:"clientName,omitempty"`
	TotalTasks     int    `json:"totalTasks" bson:"totalTasks"`
	CompletedTasks int    `json:"completedTasks" bson:"completedTasks"`
	Progress       string `json:"progress" bson:"progress"`
}
