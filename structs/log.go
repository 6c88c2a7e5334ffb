package structs

import "time"

type LogEntry struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity,omitempty"`
	Metadata  map[string]any `json:"metadata"`
	CompanyID string         `json:"companyId"`
	UserID    *string        `json:"userId,omitempty"`
	User      *Ref           `json:"user,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
