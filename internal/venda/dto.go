package venda

// CriarRequest é usado em POST /sales
type CriarRequest struct {
	ClientName    string       `json:"client_name" validate:"required"`
	ClientEmail   *string      `json:"client_email"`
	ClientPhone   *string      `json:"client_phone"`
	ClientAddress *string      `json:"client_address"`
	ClientNIF     *string      `json:"client_nif"`
	Category      Categoria    `json:"category" validate:"required,oneof=energia telecomunicacoes paineis_solares"`
	SaleType      *TipoVenda   `json:"sale_type" validate:"omitempty,oneof=nova_instalacao refid"`
	PartnerID     string       `json:"partner_id" validate:"required"`
	ContractValue float64      `json:"contract_value" validate:"gte=0"`
	LoyaltyMonths int          `json:"loyalty_months" validate:"gte=0"`
	Notes         *string      `json:"notes"`
	EnergyType    *TipoEnergia `json:"energy_type" validate:"omitempty,oneof=eletricidade gas dual"`
	CPE           *string      `json:"cpe"`
	Potencia      *string      `json:"potencia" validate:"omitempty,oneof=1.15 2.3 3.45 4.6 5.75 6.9 10.35 13.8 17.25 20.7 27.6 34.5 41.4 Outra"`
	CUI           *string      `json:"cui"`
	Escalao       *string      `json:"escalao"`
	REQ           *string      `json:"req"`
}

// AtualizarRequest é o patch limitado de PUT /sales/{id}.
// Campos nulos são ignorados.
type AtualizarRequest struct {
	Status     *Status  `json:"status" validate:"omitempty,oneof=em_negociacao perdido pendente ativo anulado"`
	ActiveDate *string  `json:"active_date"`
	Notes      *string  `json:"notes"`
	REQ        *string  `json:"req"`
	Commission *float64 `json:"commission"`
}

// ComissaoRequest é usado em PUT /sales/{id}/commission
type ComissaoRequest struct {
	Commission *float64 `json:"commission" validate:"required"`
}
