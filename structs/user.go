package structs

import (
	"strings"
	"time"
)

// Role is the user role issued by the API.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// Roles lists every known role.
var Roles = []Role{RoleAdmin, RoleManager, RoleEmployee}

// ParseRole normalizes a role, falling back to EMPLOYEE for unknown values.
func ParseRole(s string) Role {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return r
	default:
		return RoleEmployee
	}
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleEmployee
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CompanyID *string   `json:"companyId,omitempty"`
	ManagerID *string   `json:"managerId,omitempty"`
	TeamID    *string   `json:"teamId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthUser is the user summary returned with a sign-in.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Ref is the {id, name} summary embedded in tasks and teams.
type Ref struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type CreateEmployeeInput struct {
	Name     string `json:"name" validate:"min=3" msg:"Nome deve ter no mínimo 3 caracteres"`
	Email    string `json:"email" validate:"email" msg:"Email inválido"`
	Password string `json:"password" validate:"min=6" msg:"Senha deve ter no mínimo 6 caracteres"`
	Role     Role   `json:"role" validate:"oneof=EMPLOYEE MANAGER ADMIN" msg:"Role inválido"`
}

// UpdateEmployeeInput is a partial CreateEmployeeInput.
type UpdateEmployeeInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=3" msg:"Nome deve ter no mínimo 3 caracteres"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email" msg:"Email inválido"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6" msg:"Senha deve ter no mínimo 6 caracteres"`
	Role     *Role   `json:"role,omitempty" validate:"omitempty,oneof=EMPLOYEE MANAGER ADMIN" msg:"Role inválido"`
}

type SignInInput struct {
	Email    string `json:"email" validate:"email" msg:"Informe um email válido"`
	Password string `json:"password" validate:"min=6" msg:"Senha deve ter no mínimo 6 caracteres"`
}

// SignInResponse is the payload of POST /auth/signin.
type SignInResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	ExpiresIn    *int64   `json:"expires_in,omitempty"`
	User         AuthUser `json:"user"`
}

// RefreshResponse is the payload of POST /auth/refresh.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    *int64 `json:"expires_in,omitempty"`
}
