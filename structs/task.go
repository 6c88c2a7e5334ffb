package structs

import (
	"encoding/json"
	"time"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
	StatusCancelled  TaskStatus = "CANCELLED"
	// StatusDone is how metrics payloads name COMPLETED.
	StatusDone TaskStatus = "DONE"
)

// Normalize maps the DONE alias to COMPLETED.
func (s TaskStatus) Normalize() TaskStatus {
	if s == StatusDone {
		return StatusCompleted
	}
	return s
}

// TaskPriority is the urgency of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

type Task struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Name         string       `json:"name,omitempty"`
	Description  *string      `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	DueDate      *time.Time   `json:"dueDate"`
	AssignedToID *string      `json:"assignedToId"`
	AssignedTo   *Ref         `json:"assignedTo,omitempty"`
	CreatedByID  string       `json:"createdById"`
	CreatedBy    *Ref         `json:"createdBy,omitempty"`
	TeamID       string       `json:"teamId"`
	Team         *Ref         `json:"team,omitempty"`
	Labels       []string     `json:"labels"`
	Files        []TaskFile   `json:"files,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    *time.Time   `json:"updatedAt,omitempty"`
}

// DisplayName returns the title, falling back to name.
func (t *Task) DisplayName() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Name
}

// DescriptionText returns the description or "".
func (t *Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// TaskFile is an attachment. The API returns either the flat form or a join
// row pointing at a File.
type TaskFile struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"taskId,omitempty"`
	FileID    string     `json:"fileId,omitempty"`
	Name      string     `json:"name,omitempty"`
	URL       string     `json:"url,omitempty"`
	Size      int64      `json:"size,omitempty"`
	MimeType  string     `json:"mimeType,omitempty"`
	File      *File      `json:"file,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// FileName returns the best available display name.
func (f TaskFile) FileName() string {
	switch {
	case f.Name != "":
		return f.Name
	case f.File != nil && f.File.OriginalName != "":
		return f.File.OriginalName
	case f.File != nil:
		return f.File.Filename
	}
	return f.ID
}

// FileURL returns the download URL.
func (f TaskFile) FileURL() string {
	if f.URL == "" && f.File != nil {
		return f.File.URL
	}
	return f.URL
}

// FileSize returns the size in bytes.
func (f TaskFile) FileSize() int64 {
	if f.Size == 0 && f.File != nil {
		return f.File.Size
	}
	return f.Size
}

type File struct {
	ID           string `json:"id"`
	URL          string `json:"url,omitempty"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName,omitempty"`
	Filepath     string `json:"filepath,omitempty"`
	Mimetype     string `json:"mimetype"`
	Size         int64  `json:"size"`
	TaskID       string `json:"taskId,omitempty"`
}

type CreateTaskInput struct {
	Name         string       `json:"name" validate:"min=3" msg:"Título deve ter no mínimo 3 caracteres"`
	Description  string       `json:"description" validate:"min=1" msg:"Descrição é obrigatória"`
	AssignedToID string       `json:"assignedToId" validate:"min=1" msg:"Funcionário é obrigatório"`
	TeamID       string       `json:"teamId" validate:"min=1" msg:"Time é obrigatório"`
	Priority     TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate      string       `json:"dueDate,omitempty"`
	Labels       []string     `json:"labels,omitempty"`
}

// UpdateTaskInput is a partial task update. Description is always required.
// ClearDueDate sends an explicit null due date.
type UpdateTaskInput struct {
	Name         *string       `json:"name,omitempty" validate:"omitempty,min=3" msg:"Título deve ter no mínimo 3 caracteres"`
	Description  string        `json:"description" validate:"min=1" msg:"Descrição é obrigatória"`
	AssignedToID *string       `json:"assignedToId,omitempty" validate:"omitempty,min=1" msg:"Funcionário é obrigatório"`
	TeamID       *string       `json:"teamId,omitempty" validate:"omitempty,min=1" msg:"Time é obrigatório"`
	Priority     *TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate      *string       `json:"dueDate,omitempty"`
	ClearDueDate bool          `json:"-"`
	Labels       []string      `json:"labels,omitempty"`
	Status       *TaskStatus   `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}

// MarshalJSON writes dueDate as null when ClearDueDate is set.
func (in UpdateTaskInput) MarshalJSON() ([]byte, error) {
	type plain UpdateTaskInput
	if !in.ClearDueDate {
		return json.Marshal(plain(in))
	}
	return json.Marshal(struct {
		plain
		DueDate *string `json:"dueDate"`
	}{plain: plain(in)})
}
