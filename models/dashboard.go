package models

// DashboardStats is the aggregated snapshot returned by GET /api/dashboard.
type DashboardStats struct {
	TotalClients  int64 `json:"totalClients"`
	TotalProjects int64 `json:"totalProjects"`
	TotalTasks    int64 `json:"totalTasks"`
	TotalReports  int64 `json:"totalReports"`

	ProjectsByStatus map[string]int64 `json:"projectsByStatus"`
	TasksByStatus    map[string]int64 `json:"tasksByStatus"`

	UserTaskStats   []UserTaskStats   `json:"userTaskStats"`
	ClientProjStats []ClientProjStats `json:"clientProjectStats"`

	TotalBudget     float64 `json:"totalBudget"`
	CompletedBudget float64 `json:"completedBudget"`
	RemainingBudget float64 `json:"remainingBudget"`

	RecentTasks []TaskView `json:"recentTasks"`
}

// UserTaskStats breaks a user's assigned tasks down by resolved status.
type UserTaskStats struct {
	UserID    string `json:"userId" bson:"_id"`
	Username  string `json:"username" bson:"username"`
	Completed int64  `json:"completed" bson:"completed"`
	Pending   int64  `json:"pending" bson:"pending"`
	Overdue   int64  `json:"overdue" bson:"overdue"`
}

// ClientProjStats counts a client's projects by state and flags clients with
// no projects at all.
type ClientProjStats struct {
	ClientID   string `json:"clientId" bson:"_id"`
	ClientName string `json:"clientName" bson:"clientName"`
	InProgress int64  `json:"inProgress" bson:"inProgress"`
	Completed  int64  `json:"completed" bson:"completed"`
	NoProjects bool   `json:"noProjects" bson:"noProjects"`
}
