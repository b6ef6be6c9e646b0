package services

import (
	"time"

	"taskhub-project/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListOptions carries the common listing query parameters.
type ListOptions struct {
	Status     string
	Department string
	Date       string
	Page       int64
	Limit      int64
}

const defaultPageLimit = 20

// FindOptions converts pagination parameters into mongo find options sorted by
// newest first.
func (o ListOptions) FindOptions() *options.FindOptions {
	limit := o.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	page := o.Page
	if page <= 0 {
		page = 1
	}

	return options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
}

// projectStatusFilter translates an effective status into a query over the
// stored status and date fields, mirroring models.EffectiveStatus. A zero
// dueDate never counts as overdue.
func projectStatusFilter(status models.Status, now time.Time) bson.M {
	var zero time.Time

	overdueCond := bson.M{"dueDate": bson.M{"$lt": now, "$gt": zero}}
	windowCond := bson.M{"startDate": bson.M{"$lte": now, "$gt": zero}, "dueDate": bson.M{"$gte": now}}

	switch status {
	case models.StatusCompleted:
		return bson.M{"status": models.StatusCompleted}
	case models.StatusOverdue:
		return bson.M{"status": bson.M{"$ne": models.StatusCompleted}, "dueDate": bson.M{"$lt": now, "$gt": zero}}
	case models.StatusInProgress:
		// A stored "in progress" outside the date window still resolves to
		// in progress, so the filter matches either.
		return bson.M{
			"status": bson.M{"$ne": models.StatusCompleted},
			"$nor":   bson.A{overdueCond},
			"$or": bson.A{
				bson.M{"status": models.StatusInProgress},
				windowCond,
			},
		}
	case models.StatusPending:
		return bson.M{
			"status": models.StatusPending,
			"$nor":   bson.A{overdueCond, windowCond},
		}
	}
	return bson.M{"status": status}
}

// taskStatusFilter is the task variant: tasks have no start window, only a
// deadline.
func taskStatusFilter(status models.Status, now time.Time) bson.M {
	var zero time.Time

	overdueCond := bson.M{"dueDate": bson.M{"$lt": now, "$gt": zero}}

	switch status {
	case models.StatusCompleted:
		return bson.M{"status": models.StatusCompleted}
	case models.StatusOverdue:
		return bson.M{"status": bson.M{"$ne": models.StatusCompleted}, "dueDate": bson.M{"$lt": now, "$gt": zero}}
	default:
		return bson.M{"status": status, "$nor": bson.A{overdueCond}}
	}
}
