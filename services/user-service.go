package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"taskhub-project/backend/models"
	"taskhub-project/backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/rand"
)

type UserService struct {
	UsersCollection *mongo.Collection
	TasksCollection *mongo.Collection
	TokenStore      *TokenStore
	Notifications   *NotificationService
	BlackList       map[string]bool
}

func NewUserService(users, tasks *mongo.Collection, tokenStore *TokenStore, notifications *NotificationService, blackList map[string]bool) *UserService {
	return &UserService{
		UsersCollection: users,
		TasksCollection: tasks,
		TokenStore:      tokenStore,
		Notifications:   notifications,
		BlackList:       blackList,
	}
}

// RegisterUser stores an inactive user and emails a verification code.
func (s *UserService) RegisterUser(ctx context.Context, user models.User) error {
	var existingUser models.User
	if err := s.UsersCollection.FindOne(ctx, bson.M{"username": user.Username}).Decode(&existingUser); err == nil {
		return errors.New("user with username already exists")
	}

	user.Username = html.EscapeString(user.Username)
	user.Name = html.EscapeString(user.Name)
	user.LastName = html.EscapeString(user.LastName)
	user.Email = html.EscapeString(user.Email)

	if err := s.ValidatePassword(user.Password); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}
	user.Password = string(hashedPassword)

	if user.Role == "" {
		user.Role = models.RoleMember
	}

	verificationCode := fmt.Sprintf("%06d", rand.Intn(1000000))
	user.VerificationCode = verificationCode
	user.VerificationExpiry = time.Now().Add(10 * time.Minute)
	user.IsActive = false
	user.CreatedAt = time.Now()
	user.ID = primitive.NewObjectID()

	if _, err := s.UsersCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("user with username already exists")
		}
		return fmt.Errorf("failed to save user: %v", err)
	}

	subject := "Your Verification Code"
	body := fmt.Sprintf("Your verification code is %s. Please enter it within 10 minutes.", verificationCode)
	go s.Notifications.SendEmail(user.Email, subject, body)

	return nil
}

// ValidatePassword enforces the password policy and rejects blacklisted
// passwords.
func (s *UserService) ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}

	hasUppercase := false
	hasDigit := false
	for _, char := range password {
		if char >= 'A' && char <= 'Z' {
			hasUppercase = true
		}
		if char >= '0' && char <= '9' {
			hasDigit = true
		}
	}
	if !hasUppercase {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasDigit {
		return errors.New("password must contain at least one digit")
	}

	if s.BlackList[password] {
		return errors.New("password is too common")
	}

	return nil
}

// VerifyUser activates an account when the emailed code matches and has not
// expired.
func (s *UserService) VerifyUser(ctx context.Context, username, code string) error {
	var user models.User
	if err := s.UsersCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		return errors.New("user not found")
	}

	if user.IsActive {
		return nil
	}
	if user.VerificationCode != code {
		return errors.New("invalid verification code")
	}
	if time.Now().After(user.VerificationExpiry) {
		return errors.New("verification code has expired")
	}

	update := bson.M{"$set": bson.M{"isActive": true}, "$unset": bson.M{"verificationCode": "", "verificationExpiry": ""}}
	if _, err := s.UsersCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return fmt.Errorf("failed to activate user: %v", err)
	}
	return nil
}

// Login checks credentials and returns a signed JWT.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	var user models.User
	if err := s.UsersCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		return "", nil, errors.New("invalid username or password")
	}

	if !user.IsActive {
		return "", nil, errors.New("account is not verified")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid username or password")
	}

	token, err := utils.GenerateToken(user.Username, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %v", err)
	}

	return token, &user, nil
}

// Logout revokes the token for its remaining lifetime.
func (s *UserService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateToken(token)
	if err != nil {
		return errors.New("invalid token")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.TokenStore.Revoke(ctx, token, ttl)
}

// ChangePassword verifies the old password before storing the new hash.
func (s *UserService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	var user models.User
	if err := s.UsersCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		return errors.New("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("old password is incorrect")
	}

	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	update := bson.M{"$set": bson.M{"password": string(hashedPassword)}}
	if _, err := s.UsersCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}
	return nil
}

// ListUsers returns a page of users, newest first.
func (s *UserService) ListUsers(ctx context.Context, opts ListOptions) ([]models.User, error) {
	cursor, err := s.UsersCollection.Find(ctx, bson.M{}, opts.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %v", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %v", err)
	}
	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid user ID format")
	}

	var user models.User
	if err := s.UsersCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("error fetching user: %v", err)
	}
	return &user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.UsersCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("error fetching user: %v", err)
	}
	return &user, nil
}

// UpdateUser applies a partial profile update.
func (s *UserService) UpdateUser(ctx context.Context, id string, update models.User) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid user ID format")
	}

	set := bson.M{}
	if update.Name != "" {
		set["name"] = html.EscapeString(update.Name)
	}
	if update.LastName != "" {
		set["lastName"] = html.EscapeString(update.LastName)
	}
	if update.Email != "" {
		set["email"] = html.EscapeString(update.Email)
	}
	if update.Role != "" {
		set["role"] = update.Role
	}
	if !update.Department.IsZero() {
		set["department"] = update.Department
	}
	if len(set) == 0 {
		return nil, errors.New("nothing to update")
	}

	result, err := s.UsersCollection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, errors.New("user not found")
	}

	var user models.User
	if err := s.UsersCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to retrieve updated user: %v", err)
	}
	return &user, nil
}

// DeleteUser removes an account unless the user still has in-progress tasks.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid user ID format")
	}

	activeTasks, err := s.TasksCollection.CountDocuments(ctx, bson.M{
		"assignedTo": objectID,
		"status":     models.StatusInProgress,
	})
	if err != nil {
		return fmt.Errorf("failed to check task assignments: %v", err)
	}
	if activeTasks > 0 {
		return errors.New("cannot delete user assigned to an in-progress task")
	}

	result, err := s.UsersCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete user: %v", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}
