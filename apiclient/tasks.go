package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/teamops/dashboard/structs"
	"github.com/teamops/dashboard/validation/validator"
)

// UploadField is the multipart field carrying task attachments.
const UploadField = "files"

// Upload is one file to attach.
type Upload struct {
	Name   string
	Reader io.Reader
}

// OpenUploads opens the files at paths. The returned closer releases them.
func OpenUploads(paths ...string) ([]Upload, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	uploads := make([]Upload, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to open %s: %w", p, err)
		}
		files = append(files, f)
		uploads = append(uploads, Upload{Name: filepath.Base(p), Reader: f})
	}
	return uploads, closeAll, nil
}

// Upload posts files as multipart form data under field.
func (c *Client) Upload(ctx context.Context, path, field string, files []Upload, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile(field, f.Name)
		if err != nil {
			return fmt.Errorf("api: create form file: %w", err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("api: read %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("api: close multipart writer: %w", err)
	}

	return c.do(ctx, &request{
		method:      http.MethodPost,
		path:        path,
		rawBody:     buf.Bytes(),
		contentType: mw.FormDataContentType(),
	}, out)
}

// TaskService talks to /tasks.
type TaskService struct{ c *Client }

func (s *TaskService) List(ctx context.Context, params *structs.TaskListParams) (*structs.Pagination[structs.Task], error) {
	out := structs.EmptyPagination[structs.Task]()
	if err := s.c.Get(ctx, "/tasks", params, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*structs.Task, error) {
	var out structs.Task
	if err := s.c.Get(ctx, endpoint("tasks", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TaskService) Create(ctx context.Context, in *structs.CreateTaskInput) (*structs.Task, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}
	var out structs.Task
	if err := s.c.Post(ctx, "/tasks", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TaskService) Update(ctx context.Context, id string, in *structs.UpdateTaskInput) (*structs.Task, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}
	var out structs.Task
	if err := s.c.Put(ctx, endpoint("tasks", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus sets only the status of a task.
func (s *TaskService) UpdateStatus(ctx context.Context, id string, status structs.TaskStatus) (*structs.Task, error) {
	var out structs.Task
	if err := s.c.Put(ctx, endpoint("tasks", id), map[string]structs.TaskStatus{"status": status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, endpoint("tasks", id), nil)
}

// UploadFiles attaches files to a task and returns the updated task.
func (s *TaskService) UploadFiles(ctx context.Context, id string, files []Upload) (*structs.Task, error) {
	var out structs.Task
	if err := s.c.Upload(ctx, endpoint("tasks", id, "files"), UploadField, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TaskService) DeleteFile(ctx context.Context, taskID, fileID string) error {
	return s.c.Delete(ctx, endpoint("tasks", taskID, "files", fileID), nil)
}
