package services

import (
	"context"
	"fmt"
	"time"

	"taskhub-project/backend/logging"
	"taskhub-project/backend/models"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReminderService emails assignees of overdue tasks once a day. Failures are
// logged and never retried.
type ReminderService struct {
	TasksCollection *mongo.Collection
	UsersCollection *mongo.Collection
	Notifications   *NotificationService
	cron            *cron.Cron
}

func NewReminderService(tasks, users *mongo.Collection, notifications *NotificationService) *ReminderService {
	return &ReminderService{
		TasksCollection: tasks,
		UsersCollection: users,
		Notifications:   notifications,
	}
}

// Start schedules the sweep every morning at 08:00.
func (s *ReminderService) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 8 * * *", func() {
		s.SweepOverdueTasks(context.Background())
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: REMINDER_CRON_FAILED, Description: Failed to create reminder cron job: %v", err)
		return
	}

	s.cron = c
	c.Start()
	logging.Logger.Info("Event ID: REMINDER_CRON_STARTED, Description: Overdue reminder scheduler started (daily at 08:00)")
}

// Stop halts the scheduler.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// SweepOverdueTasks finds tasks whose effective status is overdue and emails
// each assignee a summary of their overdue work.
func (s *ReminderService) SweepOverdueTasks(ctx context.Context) {
	now := time.Now()

	cursor, err := s.TasksCollection.Find(ctx, taskStatusFilter(models.StatusOverdue, now))
	if err != nil {
		logging.Logger.Errorf("Event ID: REMINDER_SWEEP_FAILED, Description: Failed to query overdue tasks: %v", err)
		return
	}
	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		logging.Logger.Errorf("Event ID: REMINDER_SWEEP_DECODE_FAILED, Description: Failed to decode overdue tasks: %v", err)
		return
	}
	if len(tasks) == 0 {
		return
	}

	titlesByUser := make(map[string][]string)
	for _, task := range tasks {
		for _, userID := range task.AssignedTo {
			titlesByUser[userID.Hex()] = append(titlesByUser[userID.Hex()], task.Title)
		}
	}

	userCursor, err := s.UsersCollection.Find(ctx, bson.M{})
	if err != nil {
		logging.Logger.Errorf("Event ID: REMINDER_USER_LOOKUP_FAILED, Description: Failed to load users for reminders: %v", err)
		return
	}
	var users []models.User
	if err := userCursor.All(ctx, &users); err != nil {
		logging.Logger.Errorf("Event ID: REMINDER_USER_DECODE_FAILED, Description: Failed to decode users for reminders: %v", err)
		return
	}

	for _, user := range users {
		titles, ok := titlesByUser[user.ID.Hex()]
		if !ok {
			continue
		}
		body := fmt.Sprintf("You have %d overdue task(s):<br>", len(titles))
		for _, title := range titles {
			body += "- " + title + "<br>"
		}
		s.Notifications.SendEmail(user.Email, "Overdue task reminder", body)
	}

	logging.Logger.Infof("Event ID: REMINDER_SWEEP_DONE, Description: Overdue sweep notified %d users about %d tasks", len(titlesByUser), len(tasks))
}
