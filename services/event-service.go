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

type EventService struct {
	EventsCollection *mongo.Collection
}

func NewEventService(events *mongo.Collection) *EventService {
	return &EventService{EventsCollection: events}
}

func (s *EventService) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if event.Title == "" {
		return nil, errors.New("event title is required")
	}
	if event.StartDate.IsZero() {
		return nil, errors.New("event start date is required")
	}
	if event.EndDate.IsZero() {
		event.EndDate = event.StartDate
	}
	if event.EndDate.Before(event.StartDate) {
		return nil, errors.New("event end date cannot be before start date")
	}

	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()

	result, err := s.EventsCollection.InsertOne(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %v", err)
	}
	event.ID = result.InsertedID.(primitive.ObjectID)
	return event, nil
}

// ListEvents returns events overlapping the given day when a date filter is
// set, so multi-day events appear on every day they span.
func (s *EventService) ListEvents(ctx context.Context, opts ListOptions) ([]models.Event, error) {
	filter := bson.M{}
	if opts.Date != "" {
		day, err := time.Parse("2006-01-02", opts.Date)
		if err != nil {
			return nil, errors.New("invalid date filter, expected YYYY-MM-DD")
		}
		nextDay := day.AddDate(0, 0, 1)
		filter["startDate"] = bson.M{"$lt": nextDay}
		filter["endDate"] = bson.M{"$gte": day}
	}

	cursor, err := s.EventsCollection.Find(ctx, filter, opts.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve events: %v", err)
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %v", err)
	}
	return events, nil
}

func (s *EventService) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid event ID format")
	}

	var event models.Event
	if err := s.EventsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&event); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("event not found")
		}
		return nil, fmt.Errorf("error fetching event: %v", err)
	}
	return &event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id string, update models.Event) (*models.Event, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid event ID format")
	}

	set := bson.M{}
	if update.Title != "" {
		set["title"] = update.Title
	}
	if update.Description != "" {
		set["description"] = update.Description
	}
	if !update.StartDate.IsZero() {
		set["startDate"] = update.StartDate
	}
	if !update.EndDate.IsZero() {
		set["endDate"] = update.EndDate
	}
	if len(set) == 0 {
		return nil, errors.New("nothing to update")
	}

	result, err := s.EventsCollection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, errors.New("event not found")
	}

	var event models.Event
	if err := s.EventsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&event); err != nil {
		return nil, fmt.Errorf("failed to retrieve updated event: %v", err)
	}
	return &event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid event ID format")
	}

	result, err := s.EventsCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete event: %v", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("event not found")
	}
	return nil
}
