package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskhub-project/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DashboardService produces the admin statistics snapshot. Every query failure
// aborts the whole aggregation; there are no partial results.
type DashboardService struct {
	ProjectsCollection *mongo.Collection
	TasksCollection    *mongo.Collection
	UsersCollection    *mongo.Collection
	ClientsCollection  *mongo.Collection
	ReportsCollection  *mongo.Collection
}

func NewDashboardService(projects, tasks, users, clients, reports *mongo.Collection) *DashboardService {
	return &DashboardService{
		ProjectsCollection: projects,
		TasksCollection:    tasks,
		UsersCollection:    users,
		ClientsCollection:  clients,
		ReportsCollection:  reports,
	}
}

// DashboardFilter narrows task counts and the recent-task list.
type DashboardFilter struct {
	TaskStatus string
	From       string // YYYY-MM-DD
	To         string // YYYY-MM-DD
	UserID     string
}

func (f DashboardFilter) taskMatch(now time.Time) (bson.M, error) {
	match := bson.M{}

	if f.TaskStatus != "" {
		for k, v := range taskStatusFilter(models.Status(f.TaskStatus), now) {
			match[k] = v
		}
	}
	if f.UserID != "" {
		userID, err := primitive.ObjectIDFromHex(f.UserID)
		if err != nil {
			return nil, errors.New("invalid user ID format")
		}
		match["assignedTo"] = userID
	}

	dateRange := bson.M{}
	if f.From != "" {
		from, err := time.Parse("2006-01-02", f.From)
		if err != nil {
			return nil, errors.New("invalid from date, expected YYYY-MM-DD")
		}
		dateRange["$gte"] = from
	}
	if f.To != "" {
		to, err := time.Parse("2006-01-02", f.To)
		if err != nil {
			return nil, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		dateRange["$lt"] = to.AddDate(0, 0, 1)
	}
	if len(dateRange) > 0 {
		match["createdAt"] = dateRange
	}

	return match, nil
}

// GetStats runs the full aggregation for the dashboard view.
func (s *DashboardService) GetStats(ctx context.Context, filter DashboardFilter) (*models.DashboardStats, error) {
	now := time.Now()
	stats := &models.DashboardStats{}

	taskMatch, err := filter.taskMatch(now)
	if err != nil {
		return nil, err
	}

	if stats.TotalClients, err = s.ClientsCollection.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("failed to count clients: %v", err)
	}
	if stats.TotalProjects, err = s.ProjectsCollection.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("failed to count projects: %v", err)
	}
	if stats.TotalTasks, err = s.TasksCollection.CountDocuments(ctx, taskMatch); err != nil {
		return nil, fmt.Errorf("failed to count tasks: %v", err)
	}
	if stats.TotalReports, err = s.ReportsCollection.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("failed to count reports: %v", err)
	}

	if stats.ProjectsByStatus, err = s.statusHistogram(ctx, s.ProjectsCollection, bson.M{}, now, true); err != nil {
		return nil, err
	}
	if stats.TasksByStatus, err = s.statusHistogram(ctx, s.TasksCollection, taskMatch, now, false); err != nil {
		return nil, err
	}

	if stats.UserTaskStats, err = s.userTaskStats(ctx, now); err != nil {
		return nil, err
	}
	if stats.ClientProjStats, err = s.clientProjectStats(ctx, now); err != nil {
		return nil, err
	}

	if err := s.budgetSummary(ctx, stats); err != nil {
		return nil, err
	}

	if stats.RecentTasks, err = s.recentTasks(ctx, taskMatch, now); err != nil {
		return nil, err
	}

	return stats, nil
}

// effectiveStatusExpr mirrors models.EffectiveStatus inside a pipeline so the
// histograms and the per-document resolver can never disagree.
func effectiveStatusExpr(now time.Time, withStartWindow bool) bson.M {
	var zero time.Time

	overdue := bson.M{"$and": bson.A{
		bson.M{"$gt": bson.A{"$dueDate", zero}},
		bson.M{"$lt": bson.A{"$dueDate", now}},
	}}

	fallback := interface{}(bson.M{"$toLower": "$status"})
	if withStartWindow {
		inWindow := bson.M{"$and": bson.A{
			bson.M{"$gt": bson.A{"$startDate", zero}},
			bson.M{"$lte": bson.A{"$startDate", now}},
			bson.M{"$gte": bson.A{"$dueDate", now}},
		}}
		fallback = bson.M{"$cond": bson.A{inWindow, string(models.StatusInProgress), bson.M{"$toLower": "$status"}}}
	}

	return bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{"$status", string(models.StatusCompleted)}},
		string(models.StatusCompleted),
		bson.M{"$cond": bson.A{overdue, string(models.StatusOverdue), fallback}},
	}}
}

func (s *DashboardService) statusHistogram(ctx context.Context, collection *mongo.Collection, match bson.M, now time.Time, withStartWindow bool) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   effectiveStatusExpr(now, withStartWindow),
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate status counts: %v", err)
	}

	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode status counts: %v", err)
	}

	histogram := make(map[string]int64, len(rows))
	for _, row := range rows {
		histogram[row.ID] = row.Count
	}
	return histogram, nil
}

func (s *DashboardService) userTaskStats(ctx context.Context, now time.Time) ([]models.UserTaskStats, error) {
	var zero time.Time

	completed := bson.M{"$eq": bson.A{"$status", string(models.StatusCompleted)}}
	overdue := bson.M{"$and": bson.A{
		bson.M{"$ne": bson.A{"$status", string(models.StatusCompleted)}},
		bson.M{"$gt": bson.A{"$dueDate", zero}},
		bson.M{"$lt": bson.A{"$dueDate", now}},
	}}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$assignedTo"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":       "$assignedTo",
			"completed": bson.M{"$sum": bson.M{"$cond": bson.A{completed, 1, 0}}},
			"overdue":   bson.M{"$sum": bson.M{"$cond": bson.A{overdue, 1, 0}}},
			"total":     bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		bson.D{{Key: "$unwind", Value: "$user"}},
		bson.D{{Key: "$project", Value: bson.M{
			"username":  "$user.username",
			"completed": 1,
			"overdue":   1,
			"pending":   bson.M{"$subtract": bson.A{"$total", bson.M{"$add": bson.A{"$completed", "$overdue"}}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"username": 1}}},
	}

	cursor, err := s.TasksCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user task stats: %v", err)
	}

	stats := []models.UserTaskStats{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode user task stats: %v", err)
	}
	return stats, nil
}

func (s *DashboardService) clientProjectStats(ctx context.Context, now time.Time) ([]models.ClientProjStats, error) {
	var zero time.Time

	inProgress := bson.M{"$and": bson.A{
		bson.M{"$ne": bson.A{"$$p.status", string(models.StatusCompleted)}},
		bson.M{"$gt": bson.A{"$$p.startDate", zero}},
		bson.M{"$lte": bson.A{"$$p.startDate", now}},
		bson.M{"$gte": bson.A{"$$p.dueDate", now}},
	}}
	completed := bson.M{"$eq": bson.A{"$$p.status", string(models.StatusCompleted)}}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "projects",
			"localField":   "_id",
			"foreignField": "client",
			"as":           "projects",
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"clientName": "$name",
			"inProgress": bson.M{"$size": bson.M{"$filter": bson.M{
				"input": "$projects", "as": "p", "cond": inProgress,
			}}},
			"completed": bson.M{"$size": bson.M{"$filter": bson.M{
				"input": "$projects", "as": "p", "cond": completed,
			}}},
			"noProjects": bson.M{"$eq": bson.A{bson.M{"$size": "$projects"}, 0}},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"clientName": 1}}},
	}

	cursor, err := s.ClientsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate client project stats: %v", err)
	}

	stats := []models.ClientProjStats{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode client project stats: %v", err)
	}
	return stats, nil
}

func (s *DashboardService) budgetSummary(ctx context.Context, stats *models.DashboardStats) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$projectBudget"},
			"completed": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", string(models.StatusCompleted)}},
				"$projectBudget",
				0,
			}}},
		}}},
	}

	cursor, err := s.ProjectsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("failed to aggregate budgets: %v", err)
	}

	var rows []struct {
		Total     float64 `bson:"total"`
		Completed float64 `bson:"completed"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return fmt.Errorf("failed to decode budgets: %v", err)
	}

	if len(rows) > 0 {
		stats.TotalBudget = rows[0].Total
		stats.CompletedBudget = rows[0].Completed
	}
	stats.RemainingBudget = stats.TotalBudget - stats.CompletedBudget
	return nil
}

// recentTasks fetches the 10 newest tasks matching the filter and populates
// assignee and project context.
func (s *DashboardService) recentTasks(ctx context.Context, match bson.M, now time.Time) ([]models.TaskView, error) {
	findOptions := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(10)
	cursor, err := s.TasksCollection.Find(ctx, match, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve recent tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode recent tasks: %v", err)
	}

	helper := &TaskService{
		TasksCollection:    s.TasksCollection,
		ProjectsCollection: s.ProjectsCollection,
		UsersCollection:    s.UsersCollection,
	}
	return helper.buildViews(ctx, tasks, now)
}
