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
)

type ProjectService struct {
	ProjectsCollection *mongo.Collection
	TasksCollection    *mongo.Collection
	ClientsCollection  *mongo.Collection
	UsersCollection    *mongo.Collection
	Notifications      *NotificationService
}

// NewProjectService initializes a new ProjectService with the necessary MongoDB collections.
func NewProjectService(projects, tasks, clients, users *mongo.Collection, notifications *NotificationService) *ProjectService {
	return &ProjectService{
		ProjectsCollection: projects,
		TasksCollection:    tasks,
		ClientsCollection:  clients,
		UsersCollection:    users,
		Notifications:      notifications,
	}
}

// CreateProject validates the project invariants, inserts it and notifies the
// assigned members after the fact.
func (s *ProjectService) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	if project.Name == "" {
		return nil, errors.New("project name is required")
	}
	if !project.DueDate.After(project.StartDate) {
		return nil, errors.New("due date must be after start date")
	}
	if project.ProjectBudget < 0 {
		return nil, errors.New("project budget cannot be negative")
	}
	if project.Status == "" {
		project.Status = models.StatusPending
	}
	if !models.IsStorableStatus(project.Status) {
		return nil, errors.New("invalid project status")
	}
	if project.Priority == "" {
		project.Priority = models.PriorityMedium
	}
	if !models.IsValidPriority(project.Priority) {
		return nil, errors.New("invalid project priority")
	}

	project.ID = primitive.NewObjectID()
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt

	result, err := s.ProjectsCollection.InsertOne(ctx, project)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.New("project with the same name already exists")
		}
		return nil, fmt.Errorf("failed to create project: %v", err)
	}

	project.ID = result.InsertedID.(primitive.ObjectID)

	s.Notifications.NotifyMembers(project.Members,
		fmt.Sprintf("You have been added to project '%s'.", project.Name))

	return project, nil
}

// ListProjects returns a page of projects with resolved status, task progress
// and client display name.
func (s *ProjectService) ListProjects(ctx context.Context, opts ListOptions) ([]models.ProjectView, error) {
	now := time.Now()

	filter := bson.M{}
	if opts.Status != "" {
		for k, v := range projectStatusFilter(models.Status(opts.Status), now) {
			filter[k] = v
		}
	}
	if opts.Department != "" {
		deptID, err := primitive.ObjectIDFromHex(opts.Department)
		if err != nil {
			return nil, errors.New("invalid department ID format")
		}
		filter["departments"] = deptID
	}
	if opts.Date != "" {
		day, err := time.Parse("2006-01-02", opts.Date)
		if err != nil {
			return nil, errors.New("invalid date filter, expected YYYY-MM-DD")
		}
		filter["createdAt"] = bson.M{"$gte": day, "$lt": day.AddDate(0, 0, 1)}
	}

	cursor, err := s.ProjectsCollection.Find(ctx, filter, opts.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}

	return s.buildViews(ctx, projects, now)
}

// buildViews decorates raw projects with task counts, progress strings and
// client names using one task aggregation and one client lookup.
func (s *ProjectService) buildViews(ctx context.Context, projects []models.Project, now time.Time) ([]models.ProjectView, error) {
	views := make([]models.ProjectView, 0, len(projects))
	if len(projects) == 0 {
		return views, nil
	}

	projectIDs := make([]primitive.ObjectID, 0, len(projects))
	clientIDs := make([]primitive.ObjectID, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
		if !p.Client.IsZero() {
			clientIDs = append(clientIDs, p.Client)
		}
	}

	type taskCounts struct {
		ID        primitive.ObjectID `bson:"_id"`
		Total     int                `bson:"total"`
		Completed int                `bson:"completed"`
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"project": bson.M{"$in": projectIDs}}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$project",
			"total": bson.M{"$sum": 1},
			"completed": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.StatusCompleted}}, 1, 0},
			}},
		}}},
	}

	cursor, err := s.TasksCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate task counts: %v", err)
	}
	var counts []taskCounts
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode task counts: %v", err)
	}

	countsByProject := make(map[primitive.ObjectID]taskCounts, len(counts))
	for _, c := range counts {
		countsByProject[c.ID] = c
	}

	clientNames := make(map[primitive.ObjectID]string)
	if len(clientIDs) > 0 {
		clientCursor, err := s.ClientsCollection.Find(ctx, bson.M{"_id": bson.M{"$in": clientIDs}})
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve clients: %v", err)
		}
		var clients []models.Client
		if err := clientCursor.All(ctx, &clients); err != nil {
			return nil, fmt.Errorf("failed to decode clients: %v", err)
		}
		for _, c := range clients {
			clientNames[c.ID] = c.Name
		}
	}

	for _, p := range projects {
		c := countsByProject[p.ID]
		p.Status = models.EffectiveStatus(p.Status, p.StartDate, p.DueDate, now)
		views = append(views, models.ProjectView{
			Project:        p,
			ClientName:     clientNames[p.Client],
			TotalTasks:     c.Total,
			CompletedTasks: c.Completed,
			Progress:       models.ProgressSummary(c.Total, c.Completed),
		})
	}

	return views, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, projectID string) (*models.ProjectView, error) {
	objectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, errors.New("invalid project ID format")
	}

	var project models.Project
	err = s.ProjectsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("project not found")
		}
		return nil, fmt.Errorf("error fetching project: %v", err)
	}

	views, err := s.buildViews(ctx, []models.Project{project}, time.Now())
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// UpdateProject applies the update after re-checking the project invariants.
// Marking a project completed is refused while any of its tasks is open.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID string, update *models.ProjectUpdate) (*models.Project, error) {
	objectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, errors.New("invalid project ID format")
	}

	var existing models.Project
	if err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("project not found")
		}
		return nil, fmt.Errorf("error fetching project: %v", err)
	}

	if update.StartDate.IsZero() {
		update.StartDate = existing.StartDate
	}
	if update.DueDate.IsZero() {
		update.DueDate = existing.DueDate
	}
	if !update.DueDate.After(update.StartDate) {
		return nil, errors.New("due date must be after start date")
	}
	if update.ProjectBudget != nil && *update.ProjectBudget < 0 {
		return nil, errors.New("project budget cannot be negative")
	}
	if update.Status != "" && !models.IsStorableStatus(update.Status) {
		return nil, errors.New("invalid project status")
	}
	if update.Priority != "" && !models.IsValidPriority(update.Priority) {
		return nil, errors.New("invalid project priority")
	}

	if update.Status == models.StatusCompleted && existing.Status != models.StatusCompleted {
		openTasks, err := s.TasksCollection.CountDocuments(ctx, bson.M{
			"project": objectID,
			"status":  bson.M{"$ne": models.StatusCompleted},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to check project tasks: %v", err)
		}
		if !models.CanCompleteProject(openTasks) {
			return nil, errors.New("project has unfinished tasks")
		}
	}

	set := projectUpdateSet(update, time.Now())

	result, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.New("project with the same name already exists")
		}
		return nil, fmt.Errorf("failed to update project: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, errors.New("project not found")
	}

	var updated models.Project
	if err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to retrieve updated project: %v", err)
	}

	return &updated, nil
}

// projectUpdateSet builds the $set document for a partial update. Fields keep
// their stored value when left at the zero value; the budget pointer lets an
// explicit zero through.
func projectUpdateSet(update *models.ProjectUpdate, now time.Time) bson.M {
	set := bson.M{
		"startDate": update.StartDate,
		"dueDate":   update.DueDate,
		"updatedAt": now,
	}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Description != "" {
		set["description"] = update.Description
	}
	if !update.Client.IsZero() {
		set["client"] = update.Client
	}
	if update.Departments != nil {
		set["departments"] = update.Departments
	}
	if update.Members != nil {
		set["members"] = update.Members
	}
	if update.ProjectBudget != nil {
		set["projectBudget"] = *update.ProjectBudget
	}
	if update.Status != "" {
		set["status"] = update.Status
	}
	if update.Priority != "" {
		set["priority"] = update.Priority
	}
	return set
}

// DeleteProject removes the project and cascades to its tasks.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	objectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return errors.New("invalid project ID format")
	}

	result, err := s.ProjectsCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("project not found")
	}

	if _, err := s.TasksCollection.DeleteMany(ctx, bson.M{"project": objectID}); err != nil {
		return fmt.Errorf("failed to delete project tasks: %v", err)
	}

	return nil
}

// BulkDeleteProjects removes all listed projects and their tasks, returning
// how many projects matched.
func (s *ProjectService) BulkDeleteProjects(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, errors.New("ids are required")
	}

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return 0, errors.New("invalid project ID format")
		}
		objectIDs = append(objectIDs, objectID)
	}

	result, err := s.ProjectsCollection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete projects: %v", err)
	}

	if result.DeletedCount > 0 {
		if _, err := s.TasksCollection.DeleteMany(ctx, bson.M{"project": bson.M{"$in": objectIDs}}); err != nil {
			return result.DeletedCount, fmt.Errorf("failed to delete project tasks: %v", err)
		}
	}

	return result.DeletedCount, nil
}
