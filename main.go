package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"taskhub-project/backend/config"
	"taskhub-project/backend/handlers"
	"taskhub-project/backend/logging"
	appmiddleware "taskhub-project/backend/middleware"
	"taskhub-project/backend/services"
	"taskhub-project/backend/utils"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createUniqueIndex(collection *mongo.Collection, field string) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.M{field: 1},
		Options: options.Index().SetUnique(true),
	}
	_, err := collection.Indexes().CreateOne(context.TODO(), indexModel)
	if err != nil {
		return fmt.Errorf("failed to create unique index on %s: %v", field, err)
	}
	return nil
}

func main() {
	logging.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error:", err)
	}

	utils.InitJWT(cfg.Auth.JWTSecret)

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal("Database connection failed:", err)
	}
	defer client.Disconnect(context.TODO())

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	db := client.Database(cfg.Mongo.Database)
	projectsCollection := db.Collection("projects")
	tasksCollection := db.Collection("tasks")
	usersCollection := db.Collection("users")
	clientsCollection := db.Collection("clients")
	departmentsCollection := db.Collection("departments")
	meetingsCollection := db.Collection("meetings")
	eventsCollection := db.Collection("events")
	commentsCollection := db.Collection("comments")
	reportsCollection := db.Collection("reports")
	contactsCollection := db.Collection("contacts")
	notificationsCollection := db.Collection("notifications")

	if err := createUniqueIndex(projectsCollection, "name"); err != nil {
		log.Fatal(err)
	}
	if err := createUniqueIndex(usersCollection, "username"); err != nil {
		log.Fatal(err)
	}

	// Redis holds revoked tokens
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection error:", err)
	}
	tokenStore := services.NewTokenStore(redisClient)

	emailBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "email-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	mailer := utils.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Password)
	notificationService := services.NewNotificationService(notificationsCollection, usersCollection, mailer, emailBreaker)

	blackList, err := services.LoadBlackList(cfg.Auth.BlacklistFilePath)
	if err != nil {
		logging.Logger.Warnf("Event ID: BLACKLIST_LOAD_FAILED, Description: Could not load password blacklist: %v", err)
		blackList = map[string]bool{}
	}

	// Services
	projectService := services.NewProjectService(projectsCollection, tasksCollection, clientsCollection, usersCollection, notificationService)
	taskService := services.NewTaskService(tasksCollection, projectsCollection, usersCollection, notificationService)
	userService := services.NewUserService(usersCollection, tasksCollection, tokenStore, notificationService, blackList)
	clientService := services.NewClientService(clientsCollection, projectsCollection)
	departmentService := services.NewDepartmentService(departmentsCollection, usersCollection, projectsCollection)
	meetingService := services.NewMeetingService(meetingsCollection, notificationService)
	eventService := services.NewEventService(eventsCollection)
	commentService := services.NewCommentService(commentsCollection, projectsCollection, tasksCollection)
	reportService := services.NewReportService(reportsCollection, projectsCollection)
	contactService := services.NewContactService(contactsCollection, notificationService, cfg.SMTP.From)
	dashboardService := services.NewDashboardService(projectsCollection, tasksCollection, usersCollection, clientsCollection, reportsCollection)

	reminderService := services.NewReminderService(tasksCollection, usersCollection, notificationService)
	reminderService.Start()
	defer reminderService.Stop()

	// Handlers
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)
	loginHandler := handlers.NewLoginHandler(userService)
	clientHandler := handlers.NewClientHandler(clientService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	meetingHandler := handlers.NewMeetingHandler(meetingService)
	eventHandler := handlers.NewEventHandler(eventService)
	commentHandler := handlers.NewCommentHandler(commentService)
	reportHandler := handlers.NewReportHandler(reportService)
	contactHandler := handlers.NewContactHandler(contactService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	allRoles := []string{"Admin", "Manager", "Member"}
	managers := []string{"Admin", "Manager"}
	admins := []string{"Admin"}

	auth := func(fn http.HandlerFunc, roles []string) http.Handler {
		return appmiddleware.JWTAuthMiddleware(fn, roles, tokenStore)
	}

	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/api/users/register", userHandler.Register).Methods("POST")
	r.HandleFunc("/api/users/verify", userHandler.Verify).Methods("POST")
	r.HandleFunc("/api/users/login", loginHandler.Login).Methods("POST")
	r.HandleFunc("/api/users/check-username", loginHandler.CheckUsername).Methods("GET")
	r.HandleFunc("/api/contacts", contactHandler.CreateContact).Methods("POST")

	// Users
	r.Handle("/api/users/logout", auth(loginHandler.Logout, allRoles)).Methods("POST")
	r.Handle("/api/users/change-password", auth(userHandler.ChangePassword, allRoles)).Methods("POST")
	r.Handle("/api/users", auth(userHandler.ListUsers, admins)).Methods("GET")
	r.Handle("/api/users/{id}", auth(userHandler.GetUserByID, allRoles)).Methods("GET")
	r.Handle("/api/users/{id}", auth(userHandler.UpdateUser, admins)).Methods("PUT")
	r.Handle("/api/users/{id}", auth(userHandler.DeleteUser, admins)).Methods("DELETE")

	// Projects
	r.Handle("/api/projects", auth(projectHandler.CreateProject, managers)).Methods("POST")
	r.Handle("/api/projects", auth(projectHandler.ListProjects, allRoles)).Methods("GET")
	r.Handle("/api/projects", auth(projectHandler.BulkDeleteProjects, managers)).Methods("DELETE")
	r.Handle("/api/projects/{id}", auth(projectHandler.GetProjectByID, allRoles)).Methods("GET")
	r.Handle("/api/projects/{id}", auth(projectHandler.UpdateProject, managers)).Methods("PUT")
	r.Handle("/api/projects/{id}", auth(projectHandler.DeleteProject, managers)).Methods("DELETE")
	r.Handle("/api/projects/{id}/tasks", auth(taskHandler.ListTasksByProject, allRoles)).Methods("GET")

	// Tasks
	r.Handle("/api/tasks", auth(taskHandler.CreateTask, managers)).Methods("POST")
	r.Handle("/api/tasks", auth(taskHandler.ListTasks, allRoles)).Methods("GET")
	r.Handle("/api/tasks", auth(taskHandler.BulkDeleteTasks, managers)).Methods("DELETE")
	r.Handle("/api/tasks/{id}", auth(taskHandler.GetTaskByID, allRoles)).Methods("GET")
	r.Handle("/api/tasks/{id}", auth(taskHandler.UpdateTask, managers)).Methods("PUT", "PATCH")
	r.Handle("/api/tasks/{id}", auth(taskHandler.DeleteTask, managers)).Methods("DELETE")
	r.Handle("/api/tasks/{id}/complete", auth(taskHandler.CompleteTask, allRoles)).Methods("PATCH")

	// Dashboard (admin only)
	r.Handle("/api/dashboard", auth(dashboardHandler.GetStats, admins)).Methods("GET")

	// Clients
	r.Handle("/api/clients", auth(clientHandler.CreateClient, managers)).Methods("POST")
	r.Handle("/api/clients", auth(clientHandler.ListClients, allRoles)).Methods("GET")
	r.Handle("/api/clients/{id}", auth(clientHandler.GetClientByID, allRoles)).Methods("GET")
	r.Handle("/api/clients/{id}", auth(clientHandler.UpdateClient, managers)).Methods("PUT")
	r.Handle("/api/clients/{id}", auth(clientHandler.DeleteClient, managers)).Methods("DELETE")

	// Departments
	r.Handle("/api/departments", auth(departmentHandler.CreateDepartment, admins)).Methods("POST")
	r.Handle("/api/departments", auth(departmentHandler.ListDepartments, allRoles)).Methods("GET")
	r.Handle("/api/departments/{id}", auth(departmentHandler.GetDepartmentByID, allRoles)).Methods("GET")
	r.Handle("/api/departments/{id}", auth(departmentHandler.UpdateDepartment, admins)).Methods("PUT")
	r.Handle("/api/departments/{id}", auth(departmentHandler.DeleteDepartment, admins)).Methods("DELETE")

	// Meetings
	r.Handle("/api/meetings", auth(meetingHandler.CreateMeeting, managers)).Methods("POST")
	r.Handle("/api/meetings", auth(meetingHandler.ListMeetings, allRoles)).Methods("GET")
	r.Handle("/api/meetings/{id}", auth(meetingHandler.GetMeetingByID, allRoles)).Methods("GET")
	r.Handle("/api/meetings/{id}", auth(meetingHandler.UpdateMeeting, managers)).Methods("PUT")
	r.Handle("/api/meetings/{id}", auth(meetingHandler.DeleteMeeting, managers)).Methods("DELETE")

	// Events
	r.Handle("/api/events", auth(eventHandler.CreateEvent, allRoles)).Methods("POST")
	r.Handle("/api/events", auth(eventHandler.ListEvents, allRoles)).Methods("GET")
	r.Handle("/api/events/{id}", auth(eventHandler.GetEventByID, allRoles)).Methods("GET")
	r.Handle("/api/events/{id}", auth(eventHandler.UpdateEvent, allRoles)).Methods("PUT")
	r.Handle("/api/events/{id}", auth(eventHandler.DeleteEvent, allRoles)).Methods("DELETE")

	// Comments
	r.Handle("/api/comments", auth(commentHandler.CreateComment, allRoles)).Methods("POST")
	r.Handle("/api/comments", auth(commentHandler.ListComments, allRoles)).Methods("GET")
	r.Handle("/api/comments/{id}", auth(commentHandler.DeleteComment, managers)).Methods("DELETE")

	// Reports
	r.Handle("/api/reports", auth(reportHandler.CreateReport, managers)).Methods("POST")
	r.Handle("/api/reports", auth(reportHandler.ListReports, managers)).Methods("GET")
	r.Handle("/api/reports/{id}", auth(reportHandler.GetReportByID, managers)).Methods("GET")
	r.Handle("/api/reports/{id}", auth(reportHandler.DeleteReport, admins)).Methods("DELETE")

	// Contacts (admin inbox)
	r.Handle("/api/contacts", auth(contactHandler.ListContacts, admins)).Methods("GET")
	r.Handle("/api/contacts/{id}", auth(contactHandler.DeleteContact, admins)).Methods("DELETE")

	// Notifications
	r.Handle("/api/notifications", auth(notificationHandler.ListNotifications, allRoles)).Methods("GET")
	r.Handle("/api/notifications/{id}/read", auth(notificationHandler.MarkRead, allRoles)).Methods("PATCH")
	r.Handle("/api/notifications/{id}", auth(notificationHandler.DeleteNotification, allRoles)).Methods("DELETE")

	corsRouter := appmiddleware.EnableCORS(r, cfg.Server.CORSOrigin)

	fmt.Printf("TaskHub backend running on http://localhost:%s\n", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, corsRouter))
}
