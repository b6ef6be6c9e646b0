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

type MeetingService struct {
	MeetingsCollection *mongo.Collection
	Notifications      *NotificationService
}

func NewMeetingService(meetings *mongo.Collection, notifications *NotificationService) *MeetingService {
	return &MeetingService{MeetingsCollection: meetings, Notifications: notifications}
}

func (s *MeetingService) CreateMeeting(ctx context.Context, meeting *models.Meeting) (*models.Meeting, error) {
	if meeting.Title == "" {
		return nil, errors.New("meeting title is required")
	}
	if meeting.Date.IsZero() {
		return nil, errors.New("meeting date is required")
	}
	if meeting.Duration <= 0 {
		return nil, errors.New("meeting duration must be positive")
	}

	meeting.ID = primitive.NewObjectID()
	meeting.CreatedAt = time.Now()

	result, err := s.MeetingsCollection.InsertOne(ctx, meeting)
	if err != nil {
		return nil, fmt.Errorf("failed to create meeting: %v", err)
	}
	meeting.ID = result.InsertedID.(primitive.ObjectID)

	s.Notifications.NotifyMembers(meeting.Attendees,
		fmt.Sprintf("You have been invited to meeting '%s' on %s.", meeting.Title, meeting.Date.Format("2006-01-02 15:04")))

	return meeting, nil
}

func (s *MeetingService) ListMeetings(ctx context.Context, opts ListOptions) ([]models.Meeting, error) {
	filter := bson.M{}
	if opts.Date != "" {
		day, err := time.Parse("2006-01-02", opts.Date)
		if err != nil {
			return nil, errors.New("invalid date filter, expected YYYY-MM-DD")
		}
		filter["date"] = bson.M{"$gte": day, "$lt": day.AddDate(0, 0, 1)}
	}

	cursor, err := s.MeetingsCollection.Find(ctx, filter, opts.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve meetings: %v", err)
	}
	defer cursor.Close(ctx)

	meetings := []models.Meeting{}
	if err := cursor.All(ctx, &meetings); err != nil {
		return nil, fmt.Errorf("failed to decode meetings: %v", err)
	}
	return meetings, nil
}

func (s *MeetingService) GetMeetingByID(ctx context.Context, id string) (*models.Meeting, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid meeting ID format")
	}

	var meeting models.Meeting
	if err := s.MeetingsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&meeting); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("meeting not found")
		}
		return nil, fmt.Errorf("error fetching meeting: %v", err)
	}
	return &meeting, nil
}

func (s *MeetingService) UpdateMeeting(ctx context.Context, id string, update models.Meeting) (*models.Meeting, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid meeting ID format")
	}

	set := bson.M{}
	if update.Title != "" {
		set["title"] = update.Title
	}
	if update.Agenda != "" {
		set["agenda"] = update.Agenda
	}
	if !update.Date.IsZero() {
		set["date"] = update.Date
	}
	if update.Duration > 0 {
		set["duration"] = update.Duration
	}
	if update.Attendees != nil {
		set["attendees"] = update.Attendees
	}
	if !update.Project.IsZero() {
		set["project"] = update.Project
	}
	if len(set) == 0 {
		return nil, errors.New("nothing to update")
	}

	result, err := s.MeetingsCollection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update meeting: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, errors.New("meeting not found")
	}

	var meeting models.Meeting
	if err := s.MeetingsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&meeting); err != nil {
		return nil, fmt.Errorf("failed to retrieve updated meeting: %v", err)
	}
	return &meeting, nil
}

func (s *MeetingService) DeleteMeeting(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid meeting ID format")
	}

	result, err := s.MeetingsCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete meeting: %v", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("meeting not found")
	}
	return nil
}
