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

type DepartmentService struct {
	DepartmentsCollection *mongo.Collection
	UsersCollection       *mongo.Collection
	ProjectsCollection    *mongo.Collection
}

func NewDepartmentService(departments, users, projects *mongo.Collection) *DepartmentService {
	return &DepartmentService{
		DepartmentsCollection: departments,
		UsersCollection:       users,
		ProjectsCollection:    projects,
	}
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error) {
	if department.Name == "" {
		return nil, errors.New("department name is required")
	}

	department.ID = primitive.NewObjectID()
	department.CreatedAt = time.Now()

	result, err := s.DepartmentsCollection.InsertOne(ctx, department)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.New("department with the same name already exists")
		}
		return nil, fmt.Errorf("failed to create department: %v", err)
	}
	department.ID = result.InsertedID.(primitive.ObjectID)
	return department, nil
}

func (s *DepartmentService) ListDepartments(ctx context.Context, opts ListOptions) ([]models.Department, error) {
	cursor, err := s.DepartmentsCollection.Find(ctx, bson.M{}, opts.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve departments: %v", err)
	}
	defer cursor.Close(ctx)

	departments := []models.Department{}
	if err := cursor.All(ctx, &departments); err != nil {
		return nil, fmt.Errorf("failed to decode departments: %v", err)
	}
	return departments, nil
}

func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id string) (*models.Department, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid department ID format")
	}

	var department models.Department
	if err := s.DepartmentsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&department); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("department not found")
		}
		return nil, fmt.Errorf("error fetching department: %v", err)
	}
	return &department, nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id string, update models.Department) (*models.Department, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid department ID format")
	}

	set := bson.M{}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Description != "" {
		set["description"] = update.Description
	}
	if len(set) == 0 {
		return nil, errors.New("nothing to update")
	}

	result, err := s.DepartmentsCollection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update department: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, errors.New("department not found")
	}

	var department models.Department
	if err := s.DepartmentsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&department); err != nil {
		return nil, fmt.Errorf("failed to retrieve updated department: %v", err)
	}
	return &department, nil
}

// DeleteDepartment refuses to remove a department still referenced by users
// or projects.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid department ID format")
	}

	userCount, err := s.UsersCollection.CountDocuments(ctx, bson.M{"department": objectID})
	if err != nil {
		return fmt.Errorf("failed to check department users: %v", err)
	}
	projectCount, err := s.ProjectsCollection.CountDocuments(ctx, bson.M{"departments": objectID})
	if err != nil {
		return fmt.Errorf("failed to check department projects: %v", err)
	}
	if userCount > 0 || projectCount > 0 {
		return errors.New("cannot delete department still in use")
	}

	result, err := s.DepartmentsCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete department: %v", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("department not found")
	}
	return nil
}
