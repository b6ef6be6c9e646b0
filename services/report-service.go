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

type ReportService struct {
	ReportsCollection  *mongo.Collection
	ProjectsCollection *mongo.Collection
}

func NewReportService(reports, projects *mongo.Collection) *ReportService {
	return &ReportService{ReportsCollection: reports, ProjectsCollection: projects}
}

func (s *ReportService) CreateReport(ctx context.Context, report *models.Report) (*models.Report, error) {
	if report.Title == "" {
		return nil, errors.New("report title is required")
	}
	if report.Content == "" {
		return nil, errors.New("report content is required")
	}
	if !report.Project.IsZero() {
		count, err := s.ProjectsCollection.CountDocuments(ctx, bson.M{"_id": report.Project})
		if err != nil {
			return nil, fmt.Errorf("failed to check project: %v", err)
		}
		if count == 0 {
			return nil, errors.New("project not found")
		}
	}

	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now()

	result, err := s.ReportsCollection.InsertOne(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %v", err)
	}
	report.ID = result.InsertedID.(primitive.ObjectID)
	return report, nil
}

func (s *ReportService) ListReports(ctx context.Context, opts ListOptions) ([]models.Report, error) {
	cursor, err := s.ReportsCollection.Find(ctx, bson.M{}, opts.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reports: %v", err)
	}
	defer cursor.Close(ctx)

	reports := []models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %v", err)
	}
	return reports, nil
}

func (s *ReportService) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid report ID format")
	}

	var report models.Report
	if err := s.ReportsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&report); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("report not found")
		}
		return nil, fmt.Errorf("error fetching report: %v", err)
	}
	return &report, nil
}

func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid report ID format")
	}

	result, err := s.ReportsCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete report: %v", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("report not found")
	}
	return nil
}
