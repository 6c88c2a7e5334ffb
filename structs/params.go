package structs

import (
	"github.com/google/go-querystring/query"
	"github.com/teamops/dashboard/paging"
)

// ListParams is the generic filter set accepted by list endpoints.
type ListParams struct {
	paging.Params
	Search       string `json:"search,omitempty" url:"search,omitempty"`
	Status       string `json:"status,omitempty" url:"status,omitempty"`
	Priority     string `json:"priority,omitempty" url:"priority,omitempty"`
	TeamID       string `json:"teamId,omitempty" url:"teamId,omitempty"`
	AssignedToID string `json:"assignedToId,omitempty" url:"assignedToId,omitempty"`
	Role         string `json:"role,omitempty" url:"role,omitempty"`
	Action       string `json:"action,omitempty" url:"action,omitempty"`
	StartDate    string `json:"startDate,omitempty" url:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty" url:"endDate,omitempty"`
}

type TaskListParams struct {
	paging.Params
	Name         string `json:"name,omitempty" url:"name,omitempty"`
	Status       string `json:"status,omitempty" url:"status,omitempty"`
	AssignedToID string `json:"assignedToId,omitempty" url:"assignedToId,omitempty"`
	TeamID       string `json:"teamId,omitempty" url:"teamId,omitempty"`
	Priority     string `json:"priority,omitempty" url:"priority,omitempty"`
}

type EmployeeListParams struct {
	paging.Params
	Name       string `json:"name,omitempty" url:"name,omitempty"`
	Department string `json:"department,omitempty" url:"department,omitempty"`
	Position   string `json:"position,omitempty" url:"position,omitempty"`
	TeamID     string `json:"teamId,omitempty" url:"teamId,omitempty"`
	Role       string `json:"role,omitempty" url:"role,omitempty"`
}

type TeamListParams struct {
	paging.Params
	Name string `json:"name,omitempty" url:"name,omitempty"`
}

type NotificationListParams struct {
	paging.Params
	IsRead *bool `json:"isRead,omitempty" url:"isRead,omitempty"`
}

type LogListParams struct {
	paging.Params
	Entity    string `json:"entity,omitempty" url:"entity,omitempty"`
	Action    string `json:"action,omitempty" url:"action,omitempty"`
	StartDate string `json:"startDate,omitempty" url:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty" url:"endDate,omitempty"`
}

// MetricsFilters narrows GET /metrics.
type MetricsFilters struct {
	StartDate  string `json:"startDate,omitempty" url:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty" url:"endDate,omitempty"`
	TeamID     string `json:"teamId,omitempty" url:"teamId,omitempty"`
	UserID     string `json:"userId,omitempty" url:"userId,omitempty"`
	TaskStatus string `json:"taskStatus,omitempty" url:"taskStatus,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS DONE"`
	Priority   string `json:"priority,omitempty" url:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

// QueryString encodes params the way the API expects, empty values skipped.
// A nil params yields "".
func QueryString(params any) string {
	if params == nil {
		return ""
	}
	v, err := query.Values(params)
	if err != nil {
		return ""
	}
	return v.Encode()
}
