package structs

import "time"

type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AdminID   string    `json:"adminId"`
	Users     []User    `json:"users,omitempty"`
	Teams     []Team    `json:"teams,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCompanyInput signs up a company together with its admin user.
type CreateCompanyInput struct {
	Name        string `json:"name" validate:"min=3" msg:"Nome deve ter no mínimo 3 caracteres"`
	Email       string `json:"email" validate:"email" msg:"Email inválido"`
	Password    string `json:"password" validate:"min=6" msg:"Senha deve ter no mínimo 6 caracteres"`
	CompanyName string `json:"companyName" validate:"min=2" msg:"Nome da empresa deve ter no mínimo 2 caracteres"`
}
