// internal/utilizador/dto.go
package utilizador

import "github.com/hugoalbmartins/Leiritrix/internal/auth"

// LoginRequest é usado em POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse devolve o token e o perfil
type LoginResponse struct {
	Token string      `json:"token"`
	User  *Utilizador `json:"user"`
}

// RegistarRequest é usado em POST /auth/register; sem password é gerada uma
type RegistarRequest struct {
	Email    string    `json:"email" validate:"required,email"`
	Name     string    `json:"name" validate:"required"`
	Role     auth.Role `json:"role" validate:"omitempty,oneof=admin backoffice vendedor"`
	Password *string   `json:"password"`
}

// RegistoResponse inclui a password gerada, só devolvida nesta resposta
type RegistoResponse struct {
	*Utilizador
	GeneratedPassword string `json:"generated_password,omitempty"`
}

// AtualizarRequest é usado em PUT /users/{id}
// Campos como ponteiro permitem omitir no JSON se não quiser alterar
type AtualizarRequest struct {
	Name     *string    `json:"name"`
	Email    *string    `json:"email" validate:"omitempty,email"`
	Role     *auth.Role `json:"role" validate:"omitempty,oneof=admin backoffice vendedor"`
	Password *string    `json:"password"`
}

type AlterarSenhaRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

type RedefinirSenhaRequest struct {
	NewPassword *string `json:"new_password"`
}

type SenhaResponse struct {
	Message           string `json:"message"`
	GeneratedPassword string `json:"generated_password,omitempty"`
}

type AtivoResponse struct {
	Message string `json:"message"`
	Active  bool   `json:"active"`
}

// InitResponse é a resposta de POST /init
type InitResponse struct {
	Message       string `json:"message"`
	AdminEmail    string `json:"admin_email,omitempty"`
	AdminPassword string `json:"admin_password,omitempty"`
}
