package dashboard

import (
	"context"
	"errors"
	"slices"

	"github.com/teamops/dashboard/apiclient"
	"github.com/teamops/dashboard/logging/logger"
	"github.com/teamops/dashboard/querycache"
	"github.com/teamops/dashboard/session"
	"github.com/teamops/dashboard/structs"
)

// Dashboard serves cached API data to the screens.
type Dashboard struct {
	api   *apiclient.Client
	cache *querycache.Cache
}

// New creates a dashboard over api. A nil cache is in memory.
func New(api *apiclient.Client, cache *querycache.Cache) *Dashboard {
	if cache == nil {
		cache = querycache.New(nil)
	}
	return &Dashboard{api: api, cache: cache}
}

// Cache returns the query cache.
func (d *Dashboard) Cache() *querycache.Cache { return d.cache }

// API returns the API client.
func (d *Dashboard) API() *apiclient.Client { return d.api }

func (d *Dashboard) invalidate(ctx context.Context, roots ...string) {
	for _, root := range roots {
		if err := d.cache.Invalidate(ctx, querycache.K(root)); err != nil {
			logger.Warn(ctx, "failed to invalidate queries", "root", root, "error", err)
		}
	}
}

// CurrentUser returns the stored user, asking the API when none is stored.
func (d *Dashboard) CurrentUser(ctx context.Context) (*structs.AuthUser, error) {
	store := d.api.Store()
	u, err := store.User(ctx)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, session.ErrNoUser) {
		return nil, err
	}
	u, err = querycache.Fetch(ctx, d.cache, querycache.K(RootAuth, "me"), DetailStaleTime, d.api.Auth.Me)
	if err != nil {
		return nil, err
	}
	if err := store.SaveUser(ctx, u); err != nil {
		logger.Warn(ctx, "failed to save user", "error", err)
	}
	return u, nil
}

// Tasks

func (d *Dashboard) Tasks(ctx context.Context, params *structs.TaskListParams) (*structs.Pagination[structs.Task], error) {
	return querycache.Fetch(ctx, d.cache, listKey(RootTasks, params), ListStaleTime,
		func(ctx context.Context) (*structs.Pagination[structs.Task], error) {
			return d.api.Tasks.List(ctx, params)
		})
}

func (d *Dashboard) Task(ctx context.Context, id string) (*structs.Task, error) {
	return querycache.Fetch(ctx, d.cache, detailKey(RootTasks, id), DetailStaleTime,
		func(ctx context.Context) (*structs.Task, error) {
			return d.api.Tasks.Get(ctx, id)
		})
}

func (d *Dashboard) CreateTask(ctx context.Context, in *structs.CreateTaskInput) (*structs.Task, error) {
	task, err := d.api.Tasks.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx, RootTasks, RootMetrics)
	return task, nil
}

func (d *Dashboard) UpdateTask(ctx context.Context, id string, in *structs.UpdateTaskInput) (*structs.Task, error) {
	task, err := d.api.Tasks.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx, RootTasks, RootMetrics)
	return task, nil
}

// UpdateTaskStatus moves a task to status.
func (d *Dashboard) UpdateTaskStatus(ctx context.Context, id string, status structs.TaskStatus) (*structs.Task, error) {
	task, err := d.api.Tasks.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx, RootTasks, RootMetrics)
	return task, nil
}

func (d *Dashboard) DeleteTask(ctx context.Context, id string) error {
	if err := d.api.Tasks.Delete(ctx, id); err != nil {
		return err
	}
	if err := d.cache.Remove(ctx, detailKey(RootTasks, id)); err != nil {
		logger.Warn(ctx, "failed to remove task from cache", "id", id, "error", err)
	}
	d.invalidate(ctx, RootTasks, RootMetrics)
	return nil
}

func (d *Dashboard) UploadTaskFiles(ctx context.Context, id string, files []apiclient.Upload) (*structs.Task, error) {
	task, err := d.api.Tasks.UploadFiles(ctx, id, files)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx, RootTasks)
	return task, nil
}

func (d *Dashboard) DeleteTaskFile(ctx context.Context, taskID, fileID string) error {
	if err := d.api.Tasks.DeleteFile(ctx, taskID, fileID); err != nil {
		return err
	}
	d.invalidate(ctx, RootTasks)
	return nil
}

// Employees

func (d *Dashboard) Employees(ctx context.Context, params *structs.EmployeeListParams) (*structs.Pagination[structs.User], error) {
	return querycache.Fetch(ctx, d.cache, listKey(RootEmployees, params), ListStaleTime,
		func(ctx context.Context) (*structs.Pagination[structs.User], error) {
			return d.api.Employees.List(ctx, params)
		})
}

func (d *Dashboard) Employee(ctx context.Context, id string) (*structs.User, error) {
	return querycache.Fetch(ctx, d.cache, detailKey(RootEmployees, id), DetailStaleTime,
		func(ctx context.Context) (*structs.User, error) {
			return d.api.Employees.Get(ctx, id)
		})
}

func (d *Dashboard) CreateEmployee(ctx context.Context, in *structs.CreateEmployeeInput) (*structs.User, error) {
	u, err := d.api.Employees.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx, RootEmployees, RootMetrics)
	return u, nil
}

func (d *Dashboard) UpdateEmployee(ctx context.Context, id string, in *structs.UpdateEmployeeInput) (*structs.User, error) {
	u, err := d.api.Employees.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx, RootEmployees)
	return u, nil
}

// DeleteEmployee drops the employee from every cached list first and
// restores the lists when the API call fails.
func (d *Dashboard) DeleteEmployee(ctx context.Context, id string) error {
	snap, err := querycache.UpdateData(ctx, d.cache, querycache.K(RootEmployees, "list"),
		func(p *structs.Pagination[structs.User]) *structs.Pagination[structs.User] {
			if p == nil {
				return p
			}
			before := len(p.Data)
			p.Data = slices.DeleteFunc(p.Data, func(u structs.User) bool { return u.ID == id })
			if removed := before - len(p.Data); removed > 0 && p.Total >= removed {
				p.Total -= removed
			}
			return p
		})
	if err != nil {
		logger.Warn(ctx, "optimistic employee removal failed", "id", id, "error", err)
	}

	if err := d.api.Employees.Delete(ctx, id); err != nil {
		if snap != nil {
			if rerr := d.cache.Restore(ctx, snap); rerr != nil {
				logger.Warn(ctx, "failed to restore employee lists", "error", rerr)
			}
		}
		return err
	}

	if err := d.cache.Remove(ctx, detailKey(RootEmployees, id)); err != nil {
		logger.Warn(ctx, "failed to remove employee from cache", "id", id, "error", err)
	}
	d.invalidate(ctx, RootEmployees, RootTeams, RootMetrics)
	return nil
}

// Teams

func (d *Dashboard) Teams(ctx context.Context, params *structs.TeamListParams) (*structs.Pagination[structs.Team], error) {
	return querycache.Fetch(ctx, d.cache, listKey(RootTeams, params), ListStaleTime,
		func(ctx context.Context) (*structs.Pagination[structs.Team], error) {
			return d.api.Teams.List(ctx, params)
		})
}

func (d *Dashboard) Team(ctx context.Context, id string) (*structs.Team, error) {
	return querycache.Fetch(ctx, d.cache, detailKey(RootTeams, id), DetailStaleTime,
		func(ctx context.Context) (*structs.Team, error) {
			return d.api.Teams.Get(ctx, id)
		})
}

func (d *Dashboard) TeamMembers(ctx context.Context, id string) ([]structs.User, error) {
	return querycache.Fetch(ctx, d.cache, detailKey(RootTeams, id, "members"), DetailStaleTime,
		func(ctx context.Context) ([]structs.User, error) {
			return d.api.Teams.Members(ctx, id)
		})
}

func (d *Dashboard) CreateTeam(ctx context.Context, in *structs.CreateTeamInput) (*structs.Team, error) {
	team, err := d.api.Teams.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx, RootTeams, RootMetrics)
	return team, nil
}

func (d *Dashboard) UpdateTeam(ctx context.Context, id string, in *structs.UpdateTeamInput) (*structs.Team, error) {
	team, err := d.api.Teams.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx, RootTeams)
	return team, nil
}

func (d *Dashboard) DeleteTeam(ctx context.Context, id string) error {
	if err := d.api.Teams.Delete(ctx, id); err != nil {
		return err
	}
	if err := d.cache.Remove(ctx, detailKey(RootTeams, id)); err != nil {
		logger.Warn(ctx, "failed to remove team from cache", "id", id, "error", err)
	}
	d.invalidate(ctx, RootTeams, RootMetrics)
	return nil
}

func (d *Dashboard) AddTeamMember(ctx context.Context, teamID, userID string) error {
	if err := d.api.Teams.AddMember(ctx, teamID, userID); err != nil {
		return err
	}
	d.invalidate(ctx, RootTeams, RootEmployees)
	return nil
}

func (d *Dashboard) RemoveTeamMember(ctx context.Context, teamID, userID string) error {
	if err := d.api.Teams.RemoveMember(ctx, teamID, userID); err != nil {
		return err
	}
	d.invalidate(ctx, RootTeams, RootEmployees)
	return nil
}

// Notifications

func (d *Dashboard) Notifications(ctx context.Context, params *structs.NotificationListParams) (*structs.Pagination[structs.Notification], error) {
	key := querycache.K(RootNotifications)
	if params != nil {
		key = querycache.K(RootNotifications, params)
	}
	return querycache.Fetch(ctx, d.cache, key, NotificationsStaleTime,
		func(ctx context.Context) (*structs.Pagination[structs.Notification], error) {
			return d.api.Notifications.List(ctx, params)
		})
}

// UnreadCount is refetched every UnreadCountInterval.
func (d *Dashboard) UnreadCount(ctx context.Context) (int, error) {
	return querycache.Fetch(ctx, d.cache, querycache.K(RootUnreadCount), UnreadCountInterval, d.api.Notifications.UnreadCount)
}

func (d *Dashboard) MarkNotificationRead(ctx context.Context, id string) (*structs.Notification, error) {
	n, err := d.api.Notifications.MarkRead(ctx, id)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx, RootNotifications, RootUnreadCount)
	return n, nil
}

func (d *Dashboard) MarkAllNotificationsRead(ctx context.Context) error {
	if err := d.api.Notifications.MarkAllRead(ctx); err != nil {
		return err
	}
	d.invalidate(ctx, RootNotifications, RootUnreadCount)
	return nil
}

// Logs and metrics

func (d *Dashboard) Logs(ctx context.Context, params *structs.LogListParams) (*structs.Pagination[structs.LogEntry], error) {
	return querycache.Fetch(ctx, d.cache, listKey(RootLogs, params), ListStaleTime,
		func(ctx context.Context) (*structs.Pagination[structs.LogEntry], error) {
			return d.api.Logs.List(ctx, params)
		})
}

func (d *Dashboard) Log(ctx context.Context, id string) (*structs.LogEntry, error) {
	return querycache.Fetch(ctx, d.cache, detailKey(RootLogs, id), DetailStaleTime,
		func(ctx context.Context) (*structs.LogEntry, error) {
			return d.api.Logs.Get(ctx, id)
		})
}

func (d *Dashboard) Metrics(ctx context.Context, filters *structs.MetricsFilters) (*structs.Metrics, error) {
	key := querycache.K(RootMetrics)
	if filters != nil {
		key = querycache.K(RootMetrics, filters)
	}
	return querycache.Fetch(ctx, d.cache, key, DetailStaleTime,
		func(ctx context.Context) (*structs.Metrics, error) {
			return d.api.Metrics.Get(ctx, filters)
		})
}
