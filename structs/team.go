package structs

import "time"

type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ManagerID   string    `json:"managerId"`
	CompanyID   string    `json:"companyId"`
	Manager     *Ref      `json:"manager,omitempty"`
	Members     []User    `json:"members,omitempty"`
	Tasks       []Task    `json:"tasks,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateTeamInput struct {
	Name        string   `json:"name" validate:"min=3" msg:"Nome deve ter no mínimo 3 caracteres"`
	Description string   `json:"description,omitempty"`
	MemberIDs   []string `json:"memberIds,omitempty"`
	ManagerID   string   `json:"managerId"`
}

// UpdateTeamInput is a partial CreateTeamInput.
type UpdateTeamInput struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=3" msg:"Nome deve ter no mínimo 3 caracteres"`
	Description *string  `json:"description,omitempty"`
	MemberIDs   []string `json:"memberIds,omitempty"`
	ManagerID   *string  `json:"managerId,omitempty"`
}

// AddMemberInput is the body of POST /teams/:id/members.
type AddMemberInput struct {
	UserID string `json:"userId" validate:"required"`
}
