// Package apiclient is the REST client of the dashboard API.
//
// Every request carries the stored bearer token. When the stored expiry has
// passed, the first request to notice starts a single background refresh and
// proceeds with the old token; the request is not retried. Non-2xx responses
// become *APIError. Successful bodies shaped {"success": ..., "payload": ...}
// are unwrapped to their payload.
//
//	store := session.NewFile(cfg.Session.Path)
//	c := apiclient.New(cfg.API, store)
//	tasks, err := c.Tasks.List(ctx, &structs.TaskListParams{TeamID: "t1"})
package apiclient
