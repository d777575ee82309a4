package parceiro

// CriarRequest é usado em POST /partners
type CriarRequest struct {
	Name          string  `json:"name" validate:"required"`
	Email         *string `json:"email" validate:"omitempty,email"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
}

// AtualizarRequest é usado em PUT /partners/{id}; campos nulos ficam como estão
type AtualizarRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1"`
	Email         *string `json:"email" validate:"omitempty,email"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
}

type AtivoResponse struct {
	Message string `json:"message"`
	Active  bool   `json:"active"`
}
