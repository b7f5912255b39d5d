package dto

import (
	"strings"

	"github.com/jhoicas/canastillas-console/internal/domain"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
)

// UserForm campos del modal de usuario. Password es de solo escritura.
type UserForm struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"rol"`
	Status   string `json:"estado"`
}

// UserPayload cuerpo de POST /usuario/add y PUT /usuario/{id}.
// Password nil se omite: en una actualización el servidor lo interpreta como "sin cambio".
type UserPayload struct {
	Name     string  `json:"nombre"`
	Email    string  `json:"email"`
	Password *string `json:"password,omitempty"`
	Role     string  `json:"rol"`
	Status   string  `json:"estado"`
}

// Validate en el alta la contraseña es obligatoria; en la edición puede quedar en blanco.
func (f UserForm) Validate(editing bool) error {
	if strings.TrimSpace(f.Name) == "" {
		return domain.NewValidationError("nombre", "es obligatorio")
	}
	if strings.TrimSpace(f.Email) == "" {
		return domain.NewValidationError("email", "es obligatorio")
	}
	if !editing && f.Password == "" {
		return domain.NewValidationError("password", "es obligatoria")
	}
	if strings.TrimSpace(f.Role) == "" {
		return domain.NewValidationError("rol", "es obligatorio")
	}
	if strings.TrimSpace(f.Status) == "" {
		return domain.NewValidationError("estado", "es obligatorio")
	}
	return nil
}

// Payload arma el cuerpo a enviar. Al editar, una contraseña vacía no se envía.
func (f UserForm) Payload(editing bool) UserPayload {
	p := UserPayload{
		Name:   f.Name,
		Email:  f.Email,
		Role:   f.Role,
		Status: f.Status,
	}
	if !editing || f.Password != "" {
		pw := f.Password
		p.Password = &pw
	}
	return p
}

// UserFormFrom precarga el formulario de edición; la contraseña siempre queda en blanco.
func UserFormFrom(u entity.User) UserForm {
	return UserForm{
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Status: u.Status,
	}
}

// UserFilters filtros de la pantalla de usuarios.
type UserFilters struct {
	Role   string `json:"role"`
	Status string `json:"status"`
	Search string `json:"search"`
}
