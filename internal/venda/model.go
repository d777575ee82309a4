package venda

// Status do ciclo de vida de uma venda. Qualquer transição é permitida.
type Status string

const (
	StatusEmNegociacao Status = "em_negociacao"
	StatusPerdido      Status = "perdido"
	StatusPendente     Status = "pendente"
	StatusAtivo        Status = "ativo"
	StatusAnulado      Status = "anulado"
)

type Categoria string

const (
	CategoriaEnergia        Categoria = "energia"
	CategoriaTelecom        Categoria = "telecomunicacoes"
	CategoriaPaineisSolares Categoria = "paineis_solares"
)

type TipoVenda string

const (
	TipoNovaInstalacao TipoVenda = "nova_instalacao"
	TipoRefid          TipoVenda = "refid"
)

type TipoEnergia string

const (
	EnergiaEletricidade TipoEnergia = "eletricidade"
	EnergiaGas          TipoEnergia = "gas"
	EnergiaDual         TipoEnergia = "dual"
)

// Potencias são os escalões de potência contratada (kVA) aceites.
var Potencias = []string{
	"1.15", "2.3", "3.45", "4.6", "5.75", "6.9", "10.35", "13.8",
	"17.25", "20.7", "27.6", "34.5", "41.4", "Outra",
}

// Venda é gravada na tabela/coleção "sales". Datas são strings ISO UTC de
// largura fixa; campos opcionais são ponteiros e serializam como null.
type Venda struct {
	ID string `gorm:"primaryKey;size:36" json:"id" bson:"id"`

	ClientName    string  `gorm:"size:255;not null" json:"client_name" bson:"client_name"`
	ClientEmail   *string `gorm:"size:255" json:"client_email" bson:"client_email"`
	ClientPhone   *string `gorm:"size:50" json:"client_phone" bson:"client_phone"`
	ClientAddress *string `json:"client_address" bson:"client_address"`
	ClientNIF     *string `gorm:"column:client_nif;size:20" json:"client_nif" bson:"client_nif"`

	Category      Categoria  `gorm:"size:30;not null;index" json:"category" bson:"category"`
	SaleType      *TipoVenda `gorm:"size:30" json:"sale_type" bson:"sale_type"`
	PartnerID     string     `gorm:"size:36;not null;index" json:"partner_id" bson:"partner_id"`
	PartnerName   string     `gorm:"size:255" json:"partner_name" bson:"partner_name"`
	ContractValue float64    `gorm:"not null" json:"contract_value" bson:"contract_value"`
	LoyaltyMonths int        `gorm:"not null" json:"loyalty_months" bson:"loyalty_months"`
	Notes         *string    `json:"notes" bson:"notes"`

	EnergyType *TipoEnergia `gorm:"size:20" json:"energy_type" bson:"energy_type"`
	CPE        *string      `gorm:"column:cpe;size:30" json:"cpe" bson:"cpe"`
	Potencia   *string      `gorm:"size:10" json:"potencia" bson:"potencia"`
	CUI        *string      `gorm:"column:cui;size:30" json:"cui" bson:"cui"`
	Escalao    *string      `gorm:"size:20" json:"escalao" bson:"escalao"`

	REQ *string `gorm:"column:req;size:50" json:"req" bson:"req"`

	Status     Status `gorm:"size:20;not null;index" json:"status" bson:"status"`
	SellerID   string `gorm:"size:36;not null;index" json:"seller_id" bson:"seller_id"`
	SellerName string `gorm:"size:150" json:"seller_name" bson:"seller_name"`

	CreatedAt      string  `gorm:"size:32;not null;index" json:"created_at" bson:"created_at"`
	UpdatedAt      string  `gorm:"size:32;not null" json:"updated_at" bson:"updated_at"`
	ActiveDate     *string `gorm:"size:32" json:"active_date" bson:"active_date"`
	LoyaltyEndDate *string `gorm:"size:32;index" json:"loyalty_end_date" bson:"loyalty_end_date"`

	Commission           *float64 `json:"commission" bson:"commission"`
	CommissionAssignedBy *string  `gorm:"size:150" json:"commission_assigned_by" bson:"commission_assigned_by"`
	CommissionAssignedAt *string  `gorm:"size:32" json:"commission_assigned_at" bson:"commission_assigned_at"`
}

func (Venda) TableName() string { return "sales" }

func (s Status) Valido() bool {
	switch s {
	case StatusEmNegociacao, StatusPerdido, StatusPendente, StatusAtivo, StatusAnulado:
		return true
	}
	return false
}

func (c Categoria) Valida() bool {
	switch c {
	case CategoriaEnergia, CategoriaTelecom, CategoriaPaineisSolares:
		return true
	}
	return false
}
