// Package dashboard is the data layer behind every dashboard screen.
//
// Queries go through the query cache with per-resource stale times and
// mutations invalidate the prefixes they affect. Deleting an employee
// removes it from cached lists before the server answers and restores the
// lists when the call fails.
package dashboard
