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

type ClientService struct {
	ClientsCollection  *mongo.Collection
	ProjectsCollection *mongo.Collection
}

func NewClientService(clients, projects *mongo.Collection) *ClientService {
	return &ClientService{ClientsCollection: clients, ProjectsCollection: projects}
}

func (s *ClientService) CreateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	if client.Name == "" {
		return nil, errors.New("client name is required")
	}

	client.ID = primitive.NewObjectID()
	client.CreatedAt = time.Now()

	result, err := s.ClientsCollection.InsertOne(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %v", err)
	}
	client.ID = result.InsertedID.(primitive.ObjectID)
	return client, nil
}

func (s *ClientService) ListClients(ctx context.Context, opts ListOptions) ([]models.Client, error) {
	cursor, err := s.ClientsCollection.Find(ctx, bson.M{}, opts.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve clients: %v", err)
	}
	defer cursor.Close(ctx)

	clients := []models.Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode clients: %v", err)
	}
	return clients, nil
}

func (s *ClientService) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid client ID format")
	}

	var client models.Client
	if err := s.ClientsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("client not found")
		}
		return nil, fmt.Errorf("error fetching client: %v", err)
	}
	return &client, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id string, update models.Client) (*models.Client, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid client ID format")
	}

	set := bson.M{}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Email != "" {
		set["email"] = update.Email
	}
	if update.Phone != "" {
		set["phone"] = update.Phone
	}
	if update.Company != "" {
		set["company"] = update.Company
	}
	if update.Address != "" {
		set["address"] = update.Address
	}
	if len(set) == 0 {
		return nil, errors.New("nothing to update")
	}

	result, err := s.ClientsCollection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, errors.New("client not found")
	}

	var client models.Client
	if err := s.ClientsCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&client); err != nil {
		return nil, fmt.Errorf("failed to retrieve updated client: %v", err)
	}
	return &client, nil
}

// DeleteClient refuses to remove a client that still owns projects.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid client ID format")
	}

	projectCount, err := s.ProjectsCollection.CountDocuments(ctx, bson.M{"client": objectID})
	if err != nil {
		return fmt.Errorf("failed to check client projects: %v", err)
	}
	if projectCount > 0 {
		return errors.New("cannot delete client with existing projects")
	}

	result, err := s.ClientsCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete client: %v", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("client not found")
	}
	return nil
}
