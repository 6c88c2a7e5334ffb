package dashboard

import (
	"context"

	"github.com/teamops/dashboard/apiclient"
	"github.com/teamops/dashboard/structs"
)

// Messages of a task edit.
const (
	MsgTaskUpdated        = "Tarefa atualizada com sucesso"
	MsgTaskUpdatedNoFiles = "Tarefa atualizada, mas houve um erro ao enviar os arquivos"
	MsgTaskUpdateFailed   = "Erro ao atualizar tarefa"
)

// TaskEditResult reports the update and the upload independently.
type TaskEditResult struct {
	Task      *structs.Task
	UpdateErr error
	UploadErr error
}

// OK reports whether both steps succeeded.
func (r *TaskEditResult) OK() bool {
	return r.UpdateErr == nil && r.UploadErr == nil
}

// Message summarizes the outcome for the user.
func (r *TaskEditResult) Message() string {
	switch {
	case r.UpdateErr != nil:
		return MsgTaskUpdateFailed
	case r.UploadErr != nil:
		return MsgTaskUpdatedNoFiles
	default:
		return MsgTaskUpdated
	}
}

// EditTask updates a task and then uploads files. The upload only runs when
// the update succeeded; its failure leaves the update in place.
func (d *Dashboard) EditTask(ctx context.Context, id string, in *structs.UpdateTaskInput, files []apiclient.Upload) *TaskEditResult {
	res := &TaskEditResult{}
	res.Task, res.UpdateErr = d.UpdateTask(ctx, id, in)
	if res.UpdateErr != nil || len(files) == 0 {
		return res
	}
	if task, err := d.UploadTaskFiles(ctx, id, files); err != nil {
		res.UploadErr = err
	} else {
		res.Task = task
	}
	return res
}
