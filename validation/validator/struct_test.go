package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	Name     string `json:"name" validate:"required,min=3" msg:"Nome deve ter no mínimo 3 caracteres"`
	Email    string `json:"email" validate:"required,email" msg:"email=Email inválido"`
	Password string `json:"password" validate:"min=6"`
	CPF      string `json:"cpf,omitempty" validate:"omitempty,cpf"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,phone"`
}

func TestValidateStructMessages(t *testing.T) {
	errs := ValidateStruct(&signup{Name: "Al", Email: "nope", Password: "123"})

	assert.Equal(t, "Nome deve ter no mínimo 3 caracteres", errs["name"])
	assert.Equal(t, "Email inválido", errs["email"])
	assert.Equal(t, "O campo 'password' deve ter no mínimo 6 caracteres.", errs["password"])
	assert.Len(t, errs, 3)
}

func TestValidateStructEnglish(t *testing.T) {
	errs := ValidateStruct(signup{Name: "Alice", Email: "a@b.co", Password: "123"}, "en")
	assert.Equal(t, "The field 'password' must be at least 6 characters long.", errs["password"])
}

func TestValidateCustomTags(t *testing.T) {
	errs := ValidateStruct(&signup{Name: "Alice", Email: "a@b.co", Password: "123456", CPF: "12345678900", Phone: "11 99999-0000"})
	assert.Equal(t, "CPF inválido", errs["cpf"])
	assert.Equal(t, "Telefone inválido", errs["phone"])

	assert.True(t, IsCPF("123.456.789-00"))
	assert.True(t, IsPhone("(11) 9999-0000"))
	assert.True(t, IsPhone("(11) 99999-0000"))
	assert.False(t, IsPhone("(11) 999-0000"))
}

func TestValidateReturnsError(t *testing.T) {
	assert.NoError(t, Validate(&signup{Name: "Alice", Email: "a@b.co", Password: "123456"}))

	err := Validate(&signup{Name: "Alice", Email: "a@b.co"})
	var errs Errors
	assert.ErrorAs(t, err, &errs)
	assert.Contains(t, err.Error(), "password")
}

func TestFileKind(t *testing.T) {
	assert.Equal(t, "image", FileKind("shot.PNG"))
	assert.Equal(t, "document", FileKind("report.pdf"))
	assert.Equal(t, "video", FileKind("clip.mp4"))
	assert.Equal(t, "file", FileKind("archive.zip"))
}
