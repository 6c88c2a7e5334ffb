package structs

import (
	"encoding/json"
	"fmt"
)

type Period struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type TaskMetrics struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
	ByPriority struct {
		Low    int `json:"low"`
		Medium int `json:"medium"`
		High   int `json:"high"`
		Urgent int `json:"urgent"`
	} `json:"byPriority"`
	Overdue int `json:"overdue"`
}

type UserMetrics struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	ByRole struct {
		Admin    int `json:"admin"`
		Manager  int `json:"manager"`
		Employee int `json:"employee"`
	} `json:"byRole"`
}

type TeamTaskCount struct {
	TeamID    string `json:"teamId"`
	TeamName  string `json:"teamName"`
	TaskCount int    `json:"taskCount"`
}

type TeamMetrics struct {
	Total              int             `json:"total"`
	AverageTeamSize    float64         `json:"averageTeamSize"`
	TeamsWithMostTasks []TeamTaskCount `json:"teamsWithMostTasks"`
}

type NotificationMetrics struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
	ByType struct {
		Info    int `json:"info"`
		Success int `json:"success"`
		Warning int `json:"warning"`
		Error   int `json:"error"`
	} `json:"byType"`
}

type UserCompletion struct {
	UserID         string `json:"userId"`
	UserName       string `json:"userName"`
	TasksCompleted int    `json:"tasksCompleted"`
}

type ProductivityMetrics struct {
	TasksCompletedInPeriod int              `json:"tasksCompletedInPeriod"`
	AverageCompletionTime  float64          `json:"averageCompletionTime"`
	MostProductiveUsers    []UserCompletion `json:"mostProductiveUsers"`
}

type ActionCount struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// AdminMetrics is the company-wide overview.
type AdminMetrics struct {
	Period         Period              `json:"period"`
	Company        Ref                 `json:"company"`
	Users          UserMetrics         `json:"users"`
	Teams          TeamMetrics         `json:"teams"`
	Tasks          TaskMetrics         `json:"tasks"`
	Notifications  NotificationMetrics `json:"notifications"`
	Productivity   ProductivityMetrics `json:"productivity"`
	RecentActivity struct {
		TotalActions int           `json:"totalActions"`
		TopActions   []ActionCount `json:"topActions"`
	} `json:"recentActivity"`
}

type DirectReport struct {
	UserID         string  `json:"userId"`
	UserName       string  `json:"userName"`
	TasksAssigned  int     `json:"tasksAssigned"`
	TasksCompleted int     `json:"tasksCompleted"`
	CompletionRate float64 `json:"completionRate"`
}

// ManagerMetrics covers the manager's team and direct reports.
type ManagerMetrics struct {
	Period  Period `json:"period"`
	Manager Ref    `json:"manager"`
	Team    struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		MemberCount int    `json:"memberCount"`
	} `json:"team"`
	DirectReports struct {
		Total int            `json:"total"`
		Users []DirectReport `json:"users"`
	} `json:"directReports"`
	Tasks            TaskMetrics `json:"tasks"`
	TeamProductivity struct {
		TasksCompletedInPeriod int              `json:"tasksCompletedInPeriod"`
		AverageTasksPerMember  float64          `json:"averageTasksPerMember"`
		TopPerformers          []UserCompletion `json:"topPerformers"`
	} `json:"teamProductivity"`
	Notifications NotificationMetrics `json:"notifications"`
}

type UpcomingDeadline struct {
	TaskID   string `json:"taskId"`
	Title    string `json:"title"`
	DueDate  string `json:"dueDate"`
	Priority string `json:"priority"`
}

// EmployeeMetrics is the personal view.
type EmployeeMetrics struct {
	Period   Period `json:"period"`
	Employee struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	} `json:"employee"`
	MyTasks     TaskMetrics `json:"myTasks"`
	Performance struct {
		TasksCompletedInPeriod int     `json:"tasksCompletedInPeriod"`
		CompletionRate         float64 `json:"completionRate"`
		AverageCompletionTime  float64 `json:"averageCompletionTime"`
		TasksCreated           int     `json:"tasksCreated"`
	} `json:"performance"`
	Team struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		MyRankInTeam int    `json:"myRankInTeam"`
		TotalMembers int    `json:"totalMembers"`
	} `json:"team"`
	Notifications     NotificationMetrics `json:"notifications"`
	UpcomingDeadlines []UpcomingDeadline  `json:"upcomingDeadlines"`
}

// Metrics holds whichever view the API returned for the caller's role.
type Metrics struct {
	Role     Role
	Admin    *AdminMetrics
	Manager  *ManagerMetrics
	Employee *EmployeeMetrics
}

// UnmarshalJSON picks the shape by its distinguishing key.
func (m *Metrics) UnmarshalJSON(b []byte) error {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(b, &shape); err != nil {
		return err
	}
	switch {
	case shape["company"] != nil:
		m.Role, m.Admin = RoleAdmin, &AdminMetrics{}
		return json.Unmarshal(b, m.Admin)
	case shape["manager"] != nil:
		m.Role, m.Manager = RoleManager, &ManagerMetrics{}
		return json.Unmarshal(b, m.Manager)
	case shape["employee"] != nil:
		m.Role, m.Employee = RoleEmployee, &EmployeeMetrics{}
		return json.Unmarshal(b, m.Employee)
	default:
		return fmt.Errorf("unrecognized metrics payload")
	}
}

// MarshalJSON writes the populated view.
func (m Metrics) MarshalJSON() ([]byte, error) {
	switch {
	case m.Admin != nil:
		return json.Marshal(m.Admin)
	case m.Manager != nil:
		return json.Marshal(m.Manager)
	case m.Employee != nil:
		return json.Marshal(m.Employee)
	}
	return []byte("null"), nil
}

// TaskSummary returns the task counters of whichever view is present.
func (m *Metrics) TaskSummary() TaskMetrics {
	switch {
	case m.Admin != nil:
		return m.Admin.Tasks
	case m.Manager != nil:
		return m.Manager.Tasks
	case m.Employee != nil:
		return m.Employee.MyTasks
	}
	return TaskMetrics{}
}
