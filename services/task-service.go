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

type TaskService struct {
	TasksCollection    *mongo.Collection
	ProjectsCollection *mongo.Collection
	UsersCollection    *mongo.Collection
	Notifications      *NotificationService
}

func NewTaskService(tasks, projects, users *mongo.Collection, notifications *NotificationService) *TaskService {
	return &TaskService{
		TasksCollection:    tasks,
		ProjectsCollection: projects,
		UsersCollection:    users,
		Notifications:      notifications,
	}
}

// CreateTask validates the task against its parent project and inserts it.
// The task deadline may not exceed the project deadline.
func (s *TaskService) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Title == "" {
		return nil, errors.New("task title is required")
	}
	if task.Project.IsZero() {
		return nil, errors.New("task project is required")
	}
	if len(task.AssignedTo) == 0 {
		return nil, errors.New("task must be assigned to at least one user")
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if !models.IsStorableStatus(task.Status) {
		return nil, errors.New("invalid task status")
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if !models.IsValidPriority(task.Priority) {
		return nil, errors.New("invalid task priority")
	}

	var project models.Project
	if err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": task.Project}).Decode(&project); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("project not found")
		}
		return nil, fmt.Errorf("error fetching project: %v", err)
	}

	if !models.DeadlineWithinProject(task.DueDate, project.DueDate) {
		return nil, errors.New("task due date cannot exceed project due date")
	}

	task.ID = primitive.NewObjectID()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt

	result, err := s.TasksCollection.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}
	task.ID = result.InsertedID.(primitive.ObjectID)

	s.Notifications.NotifyMembers(task.AssignedTo,
		fmt.Sprintf("You have been assigned to task '%s' in project '%s'.", task.Title, project.Name))

	return task, nil
}

// ListTasks returns a page of tasks filtered by effective status, department
// or creation date.
func (s *TaskService) ListTasks(ctx context.Context, opts ListOptions) ([]models.TaskView, error) {
	now := time.Now()

	filter := bson.M{}
	if opts.Status != "" {
		for k, v := range taskStatusFilter(models.Status(opts.Status), now) {
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

	cursor, err := s.TasksCollection.Find(ctx, filter, opts.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}

	return s.buildViews(ctx, tasks, now)
}

// ListTasksByProject returns every task of one project with resolved status.
func (s *TaskService) ListTasksByProject(ctx context.Context, projectID string) ([]models.TaskView, error) {
	objectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, errors.New("invalid project ID format")
	}

	cursor, err := s.TasksCollection.Find(ctx, bson.M{"project": objectID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}

	return s.buildViews(ctx, tasks, time.Now())
}

func (s *TaskService) buildViews(ctx context.Context, tasks []models.Task, now time.Time) ([]models.TaskView, error) {
	views := make([]models.TaskView, 0, len(tasks))
	if len(tasks) == 0 {
		return views, nil
	}

	projectIDs := make([]primitive.ObjectID, 0, len(tasks))
	userIDs := make([]primitive.ObjectID, 0, len(tasks))
	for _, t := range tasks {
		projectIDs = append(projectIDs, t.Project)
		userIDs = append(userIDs, t.AssignedTo...)
	}

	projectNames := make(map[primitive.ObjectID]string)
	projectCursor, err := s.ProjectsCollection.Find(ctx, bson.M{"_id": bson.M{"$in": projectIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %v", err)
	}
	var projects []models.Project
	if err := projectCursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}

	userNames := make(map[primitive.ObjectID]string)
	if len(userIDs) > 0 {
		userCursor, err := s.UsersCollection.Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve users: %v", err)
		}
		var users []models.User
		if err := userCursor.All(ctx, &users); err != nil {
			return nil, fmt.Errorf("failed to decode users: %v", err)
		}
		for _, u := range users {
			userNames[u.ID] = u.Username
		}
	}

	for _, t := range tasks {
		t.Status = models.EffectiveStatus(t.Status, time.Time{}, t.DueDate, now)
		assignees := make([]string, 0, len(t.AssignedTo))
		for _, id := range t.AssignedTo {
			if name, ok := userNames[id]; ok {
				assignees = append(assignees, name)
			}
		}
		views = append(views, models.TaskView{
			Task:          t,
			ProjectName:   projectNames[t.Project],
			AssigneeNames: assignees,
		})
	}

	return views, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, taskID string) (*models.TaskView, error) {
	objectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, errors.New("invalid task ID format")
	}

	var task models.Task
	if err := s.TasksCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&task); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("task not found")
		}
		return nil, fmt.Errorf("error fetching task: %v", err)
	}

	views, err := s.buildViews(ctx, []models.Task{task}, time.Now())
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// UpdateTask applies a partial update, re-validating the deadline against the
// parent project when either side changes.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, update *models.Task) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, errors.New("invalid task ID format")
	}

	var existing models.Task
	if err := s.TasksCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("task not found")
		}
		return nil, fmt.Errorf("error fetching task: %v", err)
	}

	if update.Status != "" && !models.IsStorableStatus(update.Status) {
		return nil, errors.New("invalid task status")
	}
	if update.Priority != "" && !models.IsValidPriority(update.Priority) {
		return nil, errors.New("invalid task priority")
	}

	dueDate := existing.DueDate
	if !update.DueDate.IsZero() {
		dueDate = update.DueDate
	}
	if !dueDate.IsZero() {
		var project models.Project
		if err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": existing.Project}).Decode(&project); err == nil {
			if !models.DeadlineWithinProject(dueDate, project.DueDate) {
				return nil, errors.New("task due date cannot exceed project due date")
			}
		}
	}

	set := bson.M{"updatedAt": time.Now()}
	if update.Title != "" {
		set["title"] = update.Title
	}
	if update.Description != "" {
		set["description"] = update.Description
	}
	if update.Departments != nil {
		set["departments"] = update.Departments
	}
	if update.AssignedTo != nil {
		if len(update.AssignedTo) == 0 {
			return nil, errors.New("task must be assigned to at least one user")
		}
		set["assignedTo"] = update.AssignedTo
	}
	if update.Priority != "" {
		set["priority"] = update.Priority
	}
	if !update.DueDate.IsZero() {
		set["dueDate"] = update.DueDate
	}
	if update.Status != "" {
		set["status"] = update.Status
	}

	result, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, errors.New("task not found")
	}

	var updated models.Task
	if err := s.TasksCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to retrieve updated task: %v", err)
	}

	return &updated, nil
}

// CompleteTask marks a task completed and notifies its assignees.
func (s *TaskService) CompleteTask(ctx context.Context, taskID string) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, errors.New("invalid task ID format")
	}

	var task models.Task
	if err := s.TasksCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&task); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("task not found")
		}
		return nil, fmt.Errorf("error fetching task: %v", err)
	}

	if task.Status == models.StatusCompleted {
		return &task, nil
	}

	update := bson.M{"$set": bson.M{"status": models.StatusCompleted, "updatedAt": time.Now()}}
	if _, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": objectID}, update); err != nil {
		return nil, fmt.Errorf("failed to update task status: %v", err)
	}

	task.Status = models.StatusCompleted

	s.Notifications.NotifyMembers(task.AssignedTo,
		fmt.Sprintf("Task '%s' has been marked as completed.", task.Title))

	return &task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	objectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return errors.New("invalid task ID format")
	}

	result, err := s.TasksCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("task not found")
	}
	return nil
}

// BulkDeleteTasks removes all listed tasks, returning how many matched.
func (s *TaskService) BulkDeleteTasks(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, errors.New("ids are required")
	}

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return 0, errors.New("invalid task ID format")
		}
		objectIDs = append(objectIDs, objectID)
	}

	result, err := s.TasksCollection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete tasks: %v", err)
	}

	return result.DeletedCount, nil
}
