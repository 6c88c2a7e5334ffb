package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/teamops/dashboard/access"
	"github.com/teamops/dashboard/display"
	"github.com/teamops/dashboard/paging"
	"github.com/teamops/dashboard/structs"
)

// Card is one overview counter.
type Card struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// HomeView is the overview screen of the signed-in user.
type HomeView struct {
	User      *structs.AuthUser `json:"user"`
	RoleLabel string            `json:"roleLabel"`
	Links     []access.Link     `json:"links"`
	Metrics   *structs.Metrics  `json:"metrics"`
	Cards     []Card            `json:"cards"`
}

// Home builds the overview for the signed-in user's role.
func (d *Dashboard) Home(ctx context.Context, filters *structs.MetricsFilters) (*HomeView, error) {
	user, err := d.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	m, err := d.Metrics(ctx, filters)
	if err != nil {
		return nil, err
	}
	role := structs.ParseRole(string(user.Role))
	return &HomeView{
		User:      user,
		RoleLabel: display.RoleLabel(role),
		Links:     access.LinksFor(string(role)),
		Metrics:   m,
		Cards:     Cards(m),
	}, nil
}

func itoa(n int) string { return strconv.Itoa(n) }

// Cards returns the overview counters of whichever metrics view is present.
func Cards(m *structs.Metrics) []Card {
	switch {
	case m == nil:
		return nil
	case m.Admin != nil:
		a := m.Admin
		return []Card{
			{"Colaboradores", itoa(a.Users.Total)},
			{"Times", itoa(a.Teams.Total)},
			{"Tarefas", itoa(a.Tasks.Total)},
			{"Concluídas", itoa(a.Tasks.Done)},
			{"Atrasadas", itoa(a.Tasks.Overdue)},
		}
	case m.Manager != nil:
		mg := m.Manager
		return []Card{
			{"Membros do Time", itoa(mg.Team.MemberCount)},
			{"Tarefas do Time", itoa(mg.Tasks.Total)},
			{"Em Progresso", itoa(mg.Tasks.InProgress)},
			{"Concluídas", itoa(mg.Tasks.Done)},
			{"Atrasadas", itoa(mg.Tasks.Overdue)},
		}
	case m.Employee != nil:
		e := m.Employee
		return []Card{
			{"Minhas Tarefas", itoa(e.MyTasks.Total)},
			{"Pendentes", itoa(e.MyTasks.Pending)},
			{"Em Progresso", itoa(e.MyTasks.InProgress)},
			{"Concluídas", itoa(e.MyTasks.Done)},
			{"Taxa de Conclusão", fmt.Sprintf("%.0f%%", e.Performance.CompletionRate)},
		}
	}
	return nil
}

// TaskView is a task ready for display.
type TaskView struct {
	Task        *structs.Task        `json:"task"`
	Title       string               `json:"title"`
	Status      display.Badge        `json:"status"`
	Priority    display.Badge        `json:"priority"`
	Description string               `json:"description"`
	Due         *display.DueDateInfo `json:"due,omitempty"`
	NextStatus  structs.TaskStatus   `json:"nextStatus,omitempty"`
	NextAction  string               `json:"nextAction,omitempty"`
	CreatedAt   string               `json:"createdAt"`
}

// NewTaskView formats t.
func NewTaskView(t *structs.Task) *TaskView {
	v := &TaskView{
		Task:        t,
		Title:       t.DisplayName(),
		Status:      display.StatusBadge(t.Status),
		Priority:    display.PriorityBadge(t.Priority),
		Description: display.StripHTML(t.DescriptionText()),
		CreatedAt:   display.FormatDate(t.CreatedAt),
	}
	if info, ok := display.DueDate(t.DueDate, t.Status); ok {
		v.Due = &info
	}
	if next, ok := display.NextStatus(t.Status); ok {
		v.NextStatus = next
		v.NextAction = display.NextStatusActionLong(t.Status)
	}
	return v
}

// TaskDetail returns the cached task formatted for display.
func (d *Dashboard) TaskDetail(ctx context.Context, id string) (*TaskView, error) {
	t, err := d.Task(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewTaskView(t), nil
}

// AdvanceTask moves a task to its next status.
func (d *Dashboard) AdvanceTask(ctx context.Context, id string) (*structs.Task, error) {
	t, err := d.Task(ctx, id)
	if err != nil {
		return nil, err
	}
	next, ok := display.NextStatus(t.Status)
	if !ok {
		return nil, fmt.Errorf("task %s is %s and cannot advance", id, display.StatusLabel(t.Status))
	}
	return d.UpdateTaskStatus(ctx, id, next)
}

// PageInfo is the pagination footer of a list screen.
type PageInfo struct {
	Summary string `json:"summary"`
	Window  string `json:"window"`
	Pages   []int  `json:"pages"`
}

// NewPageInfo builds the footer of p.
func NewPageInfo[T any](p *structs.Pagination[T], itemLabel string) PageInfo {
	w := paging.NewWindow(p.CurrentPage, p.LastPage())
	return PageInfo{
		Summary: p.Summary().Label(itemLabel),
		Window:  w.String(),
		Pages:   w.Pages(),
	}
}
