// Package realtime is the notification socket client.
//
// The client keeps one websocket connection to the notification namespace,
// authenticated with the stored token, and reconnects with a fixed delay up
// to a bounded number of attempts. Frames are JSON objects
// {"event", "data", "ackId"}. Server pushed notification events are
// forwarded to registered handlers; InvalidateOnNotification wires them to
// the query cache so notification lists and the unread count are refetched.
package realtime
