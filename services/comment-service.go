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

type CommentService struct {
	CommentsCollection *mongo.Collection
	ProjectsCollection *mongo.Collection
	TasksCollection    *mongo.Collection
}

func NewCommentService(comments, projects, tasks *mongo.Collection) *CommentService {
	return &CommentService{
		CommentsCollection: comments,
		ProjectsCollection: projects,
		TasksCollection:    tasks,
	}
}

// CreateComment enforces that a comment attaches to exactly one of a project
// or a task, and that the target exists.
func (s *CommentService) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if comment.Text == "" {
		return nil, errors.New("comment text is required")
	}
	if comment.Author.IsZero() {
		return nil, errors.New("comment author is required")
	}

	hasProject := comment.Project != nil && !comment.Project.IsZero()
	hasTask := comment.Task != nil && !comment.Task.IsZero()
	if hasProject == hasTask {
		return nil, errors.New("comment must reference exactly one of project or task")
	}

	if hasProject {
		count, err := s.ProjectsCollection.CountDocuments(ctx, bson.M{"_id": *comment.Project})
		if err != nil {
			return nil, fmt.Errorf("failed to check project: %v", err)
		}
		if count == 0 {
			return nil, errors.New("project not found")
		}
	} else {
		count, err := s.TasksCollection.CountDocuments(ctx, bson.M{"_id": *comment.Task})
		if err != nil {
			return nil, fmt.Errorf("failed to check task: %v", err)
		}
		if count == 0 {
			return nil, errors.New("task not found")
		}
	}

	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()

	result, err := s.CommentsCollection.InsertOne(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %v", err)
	}
	comment.ID = result.InsertedID.(primitive.ObjectID)
	return comment, nil
}

// ListComments returns the comments of one project or one task, oldest first.
func (s *CommentService) ListComments(ctx context.Context, projectID, taskID string) ([]models.Comment, error) {
	if (projectID == "") == (taskID == "") {
		return nil, errors.New("exactly one of project or task is required")
	}

	filter := bson.M{}
	if projectID != "" {
		objectID, err := primitive.ObjectIDFromHex(projectID)
		if err != nil {
			return nil, errors.New("invalid project ID format")
		}
		filter["project"] = objectID
	} else {
		objectID, err := primitive.ObjectIDFromHex(taskID)
		if err != nil {
			return nil, errors.New("invalid task ID format")
		}
		filter["task"] = objectID
	}

	findOptions := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := s.CommentsCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve comments: %v", err)
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %v", err)
	}
	return comments, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid comment ID format")
	}

	result, err := s.CommentsCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %v", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("comment not found")
	}
	return nil
}
