package apiclient

import (
	"context"
	"net/url"

	"github.com/teamops/dashboard/structs"
	"github.com/teamops/dashboard/validation/validator"
)

func endpoint(parts ...string) string {
	p := ""
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

// EmployeeService talks to /users.
type EmployeeService struct{ c *Client }

func (s *EmployeeService) List(ctx context.Context, params *structs.EmployeeListParams) (*structs.Pagination[structs.User], error) {
	out := structs.EmptyPagination[structs.User]()
	if err := s.c.Get(ctx, "/users", params, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*structs.User, error) {
	var out structs.User
	if err := s.c.Get(ctx, endpoint("users", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EmployeeService) Create(ctx context.Context, in *structs.CreateEmployeeInput) (*structs.User, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}
	var out structs.User
	if err := s.c.Post(ctx, "/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, in *structs.UpdateEmployeeInput) (*structs.User, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}
	var out structs.User
	if err := s.c.Put(ctx, endpoint("users", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, endpoint("users", id), nil)
}

// TeamService talks to /teams.
type TeamService struct{ c *Client }

func (s *TeamService) List(ctx context.Context, params *structs.TeamListParams) (*structs.Pagination[structs.Team], error) {
	out := structs.EmptyPagination[structs.Team]()
	if err := s.c.Get(ctx, "/teams", params, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TeamService) Get(ctx context.Context, id string) (*structs.Team, error) {
	var out structs.Team
	if err := s.c.Get(ctx, endpoint("teams", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TeamService) Create(ctx context.Context, in *structs.CreateTeamInput) (*structs.Team, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}
	var out structs.Team
	if err := s.c.Post(ctx, "/teams", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TeamService) Update(ctx context.Context, id string, in *structs.UpdateTeamInput) (*structs.Team, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}
	var out structs.Team
	if err := s.c.Put(ctx, endpoint("teams", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TeamService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, endpoint("teams", id), nil)
}

// Members lists the users of a team.
func (s *TeamService) Members(ctx context.Context, teamID string) ([]structs.User, error) {
	var out []structs.User
	if err := s.c.Get(ctx, endpoint("teams", teamID, "members"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TeamService) AddMember(ctx context.Context, teamID, userID string) error {
	return s.c.Post(ctx, endpoint("teams", teamID, "members"), &structs.AddMemberInput{UserID: userID}, nil)
}

func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID string) error {
	return s.c.Delete(ctx, endpoint("teams", teamID, "members", userID), nil)
}

// NotificationService talks to /notifications.
type NotificationService struct{ c *Client }

func (s *NotificationService) List(ctx context.Context, params *structs.NotificationListParams) (*structs.Pagination[structs.Notification], error) {
	out := structs.EmptyPagination[structs.Notification]()
	if err := s.c.Get(ctx, "/notifications", params, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) (*structs.Notification, error) {
	var out structs.Notification
	if err := s.c.Patch(ctx, endpoint("notifications", id, "read"), struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.c.Patch(ctx, "/notifications/read-all", struct{}{}, nil)
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	var out structs.UnreadCount
	if err := s.c.Get(ctx, "/notifications/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// LogService talks to /logs.
type LogService struct{ c *Client }

func (s *LogService) List(ctx context.Context, params *structs.LogListParams) (*structs.Pagination[structs.LogEntry], error) {
	out := structs.EmptyPagination[structs.LogEntry]()
	if err := s.c.Get(ctx, "/logs", params, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LogService) Get(ctx context.Context, id string) (*structs.LogEntry, error) {
	var out structs.LogEntry
	if err := s.c.Get(ctx, endpoint("logs", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompanyService talks to /companies.
type CompanyService struct{ c *Client }

// Create signs up a company with its admin. No token is required.
func (s *CompanyService) Create(ctx context.Context, in *structs.CreateCompanyInput) (*structs.Company, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}
	var out structs.Company
	if err := s.c.do(ctx, &request{method: "POST", path: "/companies", body: in, skipAuth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MetricsService talks to /metrics.
type MetricsService struct{ c *Client }

// Get returns the metrics of the caller's role.
func (s *MetricsService) Get(ctx context.Context, filters *structs.MetricsFilters) (*structs.Metrics, error) {
	if filters != nil {
		if err := validator.Validate(filters); err != nil {
			return nil, err
		}
	}
	var out structs.Metrics
	if err := s.c.Get(ctx, "/metrics", filters, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
