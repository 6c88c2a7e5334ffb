package structs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamops/dashboard/paging"
	"github.com/teamops/dashboard/types"
	"github.com/teamops/dashboard/validation/validator"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleManager, ParseRole("MANAGER"))
	assert.Equal(t, RoleEmployee, ParseRole("guest"))
	assert.Equal(t, RoleEmployee, ParseRole(""))
	assert.False(t, Role("guest").IsValid())
}

func TestTaskDisplayName(t *testing.T) {
	assert.Equal(t, "Title", (&Task{Title: "Title", Name: "name"}).DisplayName())
	assert.Equal(t, "name", (&Task{Name: "name"}).DisplayName())
	assert.Equal(t, StatusCompleted, StatusDone.Normalize())
	assert.Equal(t, StatusPending, StatusPending.Normalize())
}

func TestTaskFileAccessors(t *testing.T) {
	joined := TaskFile{ID: "tf1", File: &File{URL: "http://x/f", Filename: "f.pdf", OriginalName: "Relatório.pdf", Size: 10}}
	assert.Equal(t, "Relatório.pdf", joined.FileName())
	assert.Equal(t, "http://x/f", joined.FileURL())
	assert.Equal(t, int64(10), joined.FileSize())

	flat := TaskFile{ID: "tf2", Name: "a.png", URL: "http://x/a", Size: 3}
	assert.Equal(t, "a.png", flat.FileName())
	assert.Equal(t, "http://x/a", flat.FileURL())
}

func TestCreateTaskInputValidation(t *testing.T) {
	errs := validator.ValidateStruct(&CreateTaskInput{Name: "ab", Priority: "NOW"})
	assert.Equal(t, "Título deve ter no mínimo 3 caracteres", errs["name"])
	assert.Equal(t, "Descrição é obrigatória", errs["description"])
	assert.Equal(t, "Funcionário é obrigatório", errs["assignedToId"])
	assert.Equal(t, "Time é obrigatório", errs["teamId"])
	assert.Contains(t, errs, "priority")

	ok := &CreateTaskInput{Name: "Deploy", Description: "x", AssignedToID: "u1", TeamID: "t1", Priority: PriorityHigh}
	assert.Empty(t, validator.ValidateStruct(ok))
}

func TestUpdateTaskInput(t *testing.T) {
	errs := validator.ValidateStruct(&UpdateTaskInput{Name: types.ToPointer("ab")})
	assert.Equal(t, "Descrição é obrigatória", errs["description"])
	assert.Equal(t, "Título deve ter no mínimo 3 caracteres", errs["name"])

	assert.Empty(t, validator.ValidateStruct(&UpdateTaskInput{Description: "d", Status: types.ToPointer(StatusCancelled)}))

	b, err := json.Marshal(UpdateTaskInput{Description: "d"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"d"}`, string(b))

	b, err = json.Marshal(UpdateTaskInput{Description: "d", DueDate: types.ToPointer("2025-01-01"), ClearDueDate: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"d","dueDate":null}`, string(b))
}

func TestEmployeeAndAuthInputs(t *testing.T) {
	errs := validator.ValidateStruct(&CreateEmployeeInput{Name: "Ana Lima", Email: "ana@x.com", Password: "123456", Role: "BOSS"})
	assert.Equal(t, map[string]string{"role": "Role inválido"}, errs)

	errs = validator.ValidateStruct(&UpdateEmployeeInput{Email: types.ToPointer("bad")})
	assert.Equal(t, map[string]string{"email": "Email inválido"}, errs)
	assert.Empty(t, validator.ValidateStruct(&UpdateEmployeeInput{}))

	errs = validator.ValidateStruct(&SignInInput{Email: "x", Password: "1"})
	assert.Equal(t, "Informe um email válido", errs["email"])
	assert.Equal(t, "Senha deve ter no mínimo 6 caracteres", errs["password"])

	errs = validator.ValidateStruct(&CreateCompanyInput{Name: "Ana", Email: "a@b.co", Password: "123456", CompanyName: "A"})
	assert.Equal(t, map[string]string{"companyName": "Nome da empresa deve ter no mínimo 2 caracteres"}, errs)

	errs = validator.ValidateStruct(&CreateTeamInput{Name: "QA"})
	assert.Equal(t, "Nome deve ter no mínimo 3 caracteres", errs["name"])
}

func TestQueryString(t *testing.T) {
	read := false
	assert.Equal(t, "isRead=false&limit=20&page=2", QueryString(&NotificationListParams{Params: paging.Params{Page: 2, Limit: 20}, IsRead: &read}))
	assert.Equal(t, "priority=HIGH&teamId=t1", QueryString(TaskListParams{TeamID: "t1", Priority: "HIGH"}))
	assert.Equal(t, "", QueryString(nil))
	assert.Equal(t, "", QueryString(&LogListParams{}))
}

func TestPagination(t *testing.T) {
	var p Pagination[Task]
	require.NoError(t, json.Unmarshal([]byte(`{"data":[{"id":"1"},{"id":"2"},{"id":"3"},{"id":"4"},{"id":"5"}],"total":25,"currentPage":3,"perPage":10,"limit":10}`), &p))
	assert.Equal(t, "21 - 25 de 25", p.Summary().String())
	assert.Equal(t, 3, p.LastPage())

	empty := EmptyPagination[User]()
	assert.Equal(t, 1, empty.CurrentPage)
	assert.Equal(t, 10, empty.PerPage)
	assert.NotNil(t, empty.Data)
}

func TestMetricsUnmarshal(t *testing.T) {
	var m Metrics
	require.NoError(t, json.Unmarshal([]byte(`{"period":{},"company":{"id":"c","name":"Acme"},"tasks":{"total":4,"done":1}}`), &m))
	assert.Equal(t, RoleAdmin, m.Role)
	assert.Equal(t, "Acme", m.Admin.Company.Name)
	assert.Equal(t, 4, m.TaskSummary().Total)

	m = Metrics{}
	require.NoError(t, json.Unmarshal([]byte(`{"employee":{"id":"u","name":"Bia","role":"EMPLOYEE"},"myTasks":{"pending":2}}`), &m))
	assert.Equal(t, RoleEmployee, m.Role)
	assert.Equal(t, 2, m.TaskSummary().Pending)

	assert.Error(t, json.Unmarshal([]byte(`{"other":1}`), &m))
}
