package notificacao

// Tipo de notificação.
type Tipo string

const (
	TipoVendaCriada    Tipo = "sale_created"
	TipoEstadoAlterado Tipo = "sale_status_changed"
)

// Notificacao é gravada na tabela/coleção "notifications".
type Notificacao struct {
	ID        string `gorm:"primaryKey;size:36" json:"id" bson:"id"`
	UserID    string `gorm:"size:36;not null;index" json:"user_id" bson:"user_id"`
	Title     string `gorm:"size:255;not null" json:"title" bson:"title"`
	Message   string `gorm:"not null" json:"message" bson:"message"`
	Type      Tipo   `gorm:"size:30;not null" json:"type" bson:"type"`
	SaleID    string `gorm:"size:36;index" json:"sale_id" bson:"sale_id"`
	Read      bool   `gorm:"not null" json:"read" bson:"read"`
	CreatedAt string `gorm:"size:32;not null;index" json:"created_at" bson:"created_at"`
}

func (Notificacao) TableName() string { return "notifications" }

type ContagemResponse struct {
	Count int64 `json:"count"`
}
