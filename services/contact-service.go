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

type ContactService struct {
	ContactsCollection *mongo.Collection
	Notifications      *NotificationService
	AdminEmail         string
}

func NewContactService(contacts *mongo.Collection, notifications *NotificationService, adminEmail string) *ContactService {
	return &ContactService{
		ContactsCollection: contacts,
		Notifications:      notifications,
		AdminEmail:         adminEmail,
	}
}

// CreateContact stores the message and forwards it to the admin inbox in the
// background.
func (s *ContactService) CreateContact(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	if contact.Name == "" || contact.Email == "" || contact.Message == "" {
		return nil, errors.New("name, email and message are required")
	}

	contact.ID = primitive.NewObjectID()
	contact.CreatedAt = time.Now()

	result, err := s.ContactsCollection.InsertOne(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact message: %v", err)
	}
	contact.ID = result.InsertedID.(primitive.ObjectID)

	if s.AdminEmail != "" {
		subject := fmt.Sprintf("Contact form: %s", contact.Subject)
		body := fmt.Sprintf("From %s (%s):<br>%s", contact.Name, contact.Email, contact.Message)
		go s.Notifications.SendEmail(s.AdminEmail, subject, body)
	}

	return contact, nil
}

func (s *ContactService) ListContacts(ctx context.Context, opts ListOptions) ([]models.Contact, error) {
	cursor, err := s.ContactsCollection.Find(ctx, bson.M{}, opts.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve contact messages: %v", err)
	}
	defer cursor.Close(ctx)

	contacts := []models.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("failed to decode contact messages: %v", err)
	}
	return contacts, nil
}

func (s *ContactService) DeleteContact(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid contact ID format")
	}

	result, err := s.ContactsCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %v", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("contact message not found")
	}
	return nil
}
