package parceiro

// Parceiro é uma operadora/fornecedor a quem as vendas são atribuídas.
type Parceiro struct {
	ID            string  `gorm:"primaryKey;size:36" json:"id" bson:"id"`
	Name          string  `gorm:"size:255;not null;index" json:"name" bson:"name"`
	Email         *string `gorm:"size:255" json:"email" bson:"email"`
	ContactPerson *string `gorm:"size:255" json:"contact_person" bson:"contact_person"`
	Phone         *string `gorm:"size:50" json:"phone" bson:"phone"`
	Active        bool    `gorm:"not null" json:"active" bson:"active"`
	CreatedAt     string  `gorm:"size:32;not null" json:"created_at" bson:"created_at"`
}

func (Parceiro) TableName() string { return "partners" }
