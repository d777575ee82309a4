// internal/utilizador/model.go
package utilizador

import "github.com/hugoalbmartins/Leiritrix/internal/auth"

// Utilizador é gravado na tabela/coleção "users". As datas são strings ISO UTC.
type Utilizador struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id" bson:"id"`
	Email              string    `gorm:"size:255;uniqueIndex;not null" json:"email" bson:"email"`
	Name               string    `gorm:"size:150;not null" json:"name" bson:"name"`
	Role               auth.Role `gorm:"size:20;not null;index" json:"role" bson:"role"`
	Active             bool      `gorm:"not null" json:"active" bson:"active"`
	MustChangePassword bool      `gorm:"not null" json:"must_change_password" bson:"must_change_password"`
	PasswordHash       string    `gorm:"size:255;not null" json:"-" bson:"password_hash"`
	CreatedAt          string    `gorm:"size:32;not null" json:"created_at" bson:"created_at"`
}

func (Utilizador) TableName() string { return "users" }

// Identidade converte para a identidade usada na autorização.
func (u *Utilizador) Identidade() *auth.Identidade {
	return &auth.Identidade{ID: u.ID, Nome: u.Name, Email: u.Email, Role: u.Role}
}

// EstatisticasVendas resume as vendas de um vendedor.
type EstatisticasVendas struct {
	Total       int64   `json:"total"`
	Active      int64   `json:"active"`
	Pending     int64   `json:"pending"`
	Negotiating int64   `json:"negotiating"`
	Lost        int64   `json:"lost"`
	TotalValue  float64 `json:"total_value"`
}
