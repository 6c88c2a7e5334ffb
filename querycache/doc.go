// Package querycache caches API query results by key.
//
// A key is a list of parts, for example Key{"tasks", id}. Entries are fresh
// for a per-query stale time; afterwards, or once invalidated, the next
// Fetch calls the fetcher again. Concurrent fetches of one key share a
// single call, and a failed fetch is retried once. Invalidate(Key{"tasks"})
// marks every key starting with "tasks" stale.
package querycache
