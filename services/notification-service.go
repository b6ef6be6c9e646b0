package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskhub-project/backend/logging"
	"taskhub-project/backend/models"
	"taskhub-project/backend/utils"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationService stores in-app notifications and dispatches best-effort
// emails. Email sends run after the HTTP response behind a circuit breaker;
// failures are logged and dropped, never surfaced to the caller.
type NotificationService struct {
	NotificationsCollection *mongo.Collection
	UsersCollection         *mongo.Collection
	Mailer                  *utils.Mailer
	EmailBreaker            *gobreaker.CircuitBreaker
}

func NewNotificationService(notifications, users *mongo.Collection, mailer *utils.Mailer, breaker *gobreaker.CircuitBreaker) *NotificationService {
	return &NotificationService{
		NotificationsCollection: notifications,
		UsersCollection:         users,
		Mailer:                  mailer,
		EmailBreaker:            breaker,
	}
}

// NotifyMembers records a notification for each user and emails them in the
// background. Safe to call with a nil receiver in tests that do not wire
// notifications.
func (s *NotificationService) NotifyMembers(memberIDs []primitive.ObjectID, message string) {
	if s == nil || len(memberIDs) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cursor, err := s.UsersCollection.Find(ctx, bson.M{"_id": bson.M{"$in": memberIDs}})
		if err != nil {
			logging.Logger.Errorf("Event ID: NOTIFY_MEMBERS_LOOKUP_FAILED, Description: Failed to load users for notification: %v", err)
			return
		}
		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			logging.Logger.Errorf("Event ID: NOTIFY_MEMBERS_DECODE_FAILED, Description: Failed to decode users for notification: %v", err)
			return
		}

		for _, user := range users {
			notification := models.Notification{
				ID:        primitive.NewObjectID(),
				UserID:    user.ID,
				Username:  user.Username,
				Message:   message,
				CreatedAt: time.Now(),
				IsRead:    false,
			}
			if _, err := s.NotificationsCollection.InsertOne(ctx, notification); err != nil {
				logging.Logger.Errorf("Event ID: NOTIFICATION_INSERT_FAILED, Description: Failed to store notification for %s: %v", user.Username, err)
			}

			s.SendEmail(user.Email, "TaskHub notification", message)
		}
	}()
}

// SendEmail pushes one message through the circuit breaker. Best effort only.
func (s *NotificationService) SendEmail(to, subject, body string) {
	if s == nil || to == "" {
		return
	}

	_, err := s.EmailBreaker.Execute(func() (interface{}, error) {
		return nil, s.Mailer.Send(to, subject, body)
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: EMAIL_SEND_FAILED, Description: Failed to send email to %s: %v", to, err)
	}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, username string) ([]models.Notification, error) {
	findOptions := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.NotificationsCollection.Find(ctx, bson.M{"username": username}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %v", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %v", err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read, scoped to the owning user.
func (s *NotificationService) MarkRead(ctx context.Context, id, username string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid notification ID format")
	}

	result, err := s.NotificationsCollection.UpdateOne(ctx,
		bson.M{"_id": objectID, "username": username},
		bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return fmt.Errorf("failed to update notification: %v", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("notification not found")
	}
	return nil
}

// Delete removes a notification, scoped to the owning user.
func (s *NotificationService) Delete(ctx context.Context, id, username string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid notification ID format")
	}

	result, err := s.NotificationsCollection.DeleteOne(ctx, bson.M{"_id": objectID, "username": username})
	if err != nil {
		return fmt.Errorf("failed to delete notification: %v", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("notification not found")
	}
	return nil
}
