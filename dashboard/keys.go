package dashboard

import (
	"reflect"
	"time"

	"github.com/teamops/dashboard/querycache"
)

// Stale times
const (
	ListStaleTime          = 10 * time.Minute
	DetailStaleTime        = 5 * time.Minute
	NotificationsStaleTime = 30 * time.Minute
	UnreadCountInterval    = 30 * time.Second
)

// Cache key roots. Lists live under <root>/"list" and details under
// <root>/"detail".
const (
	RootTasks         = "tasks"
	RootEmployees     = "employees"
	RootTeams         = "teams"
	RootLogs          = "logs"
	RootMetrics       = "metrics"
	RootNotifications = "notifications"
	RootUnreadCount   = "notifications-unread-count"
	RootAuth          = "auth"
)

func listKey(root string, params any) querycache.Key {
	if params == nil || reflect.ValueOf(params).Kind() == reflect.Pointer && reflect.ValueOf(params).IsNil() {
		return querycache.K(root, "list")
	}
	return querycache.K(root, "list", params)
}

func detailKey(root, id string, rest ...any) querycache.Key {
	return append(querycache.K(root, "detail", id), rest...)
}
