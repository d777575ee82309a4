package venda

import (
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Filtro descreve uma consulta sobre vendas. Campos vazios não filtram.
// As datas comparam as strings ISO tal como estão gravadas.
type Filtro struct {
	SellerID  string
	Status    Status
	Category  Categoria
	PartnerID string
	// Search procura, sem distinguir maiúsculas, em client_name, client_nif e partner_name.
	Search string

	CreatedDe    string // created_at >= CreatedDe
	CreatedAte   string // created_at <= CreatedAte
	CreatedAntes string // created_at < CreatedAntes

	ComComissao bool
	// LoyaltyAte exige loyalty_end_date preenchido e <= LoyaltyAte.
	LoyaltyAte string
}

// Ordem de listagem.
type Ordem int

const (
	OrdemRecentes    Ordem = iota // created_at desc
	OrdemFidelizacao              // loyalty_end_date asc
)

// Campos agregáveis.
const (
	CampoStatus        = "status"
	CampoCategory      = "category"
	CampoContractValue = "contract_value"
	CampoCommission    = "commission"
)

func campoValido(campo string) error {
	switch campo {
	case CampoStatus, CampoCategory, CampoContractValue, CampoCommission:
		return nil
	}
	return fmt.Errorf("campo de agregação desconhecido: %q", campo)
}

var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// padraoLike devolve o termo de pesquisa em minúsculas, com os curingas escapados.
func padraoLike(search string) string {
	return "%" + escapeLike.Replace(strings.ToLower(search)) + "%"
}

// FiltroBSON traduz o filtro para uma query MongoDB.
func FiltroBSON(f Filtro) bson.D {
	q := bson.D{}
	if f.SellerID != "" {
		q = append(q, bson.E{Key: "seller_id", Value: f.SellerID})
	}
	if f.Status != "" {
		q = append(q, bson.E{Key: "status", Value: f.Status})
	}
	if f.Category != "" {
		q = append(q, bson.E{Key: "category", Value: f.Category})
	}
	if f.PartnerID != "" {
		q = append(q, bson.E{Key: "partner_id", Value: f.PartnerID})
	}

	created := bson.D{}
	if f.CreatedDe != "" {
		created = append(created, bson.E{Key: "$gte", Value: f.CreatedDe})
	}
	if f.CreatedAte != "" {
		created = append(created, bson.E{Key: "$lte", Value: f.CreatedAte})
	}
	if f.CreatedAntes != "" {
		created = append(created, bson.E{Key: "$lt", Value: f.CreatedAntes})
	}
	if len(created) > 0 {
		q = append(q, bson.E{Key: "created_at", Value: created})
	}

	if f.ComComissao {
		q = append(q, bson.E{Key: "commission", Value: bson.D{{Key: "$ne", Value: nil}}})
	}
	if f.LoyaltyAte != "" {
		q = append(q, bson.E{Key: "loyalty_end_date", Value: bson.D{
			{Key: "$ne", Value: nil},
			{Key: "$lte", Value: f.LoyaltyAte},
		}})
	}

	if f.Search != "" {
		re := bson.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		q = append(q, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "client_name", Value: re}},
			bson.D{{Key: "client_nif", Value: re}},
			bson.D{{Key: "partner_name", Value: re}},
		}})
	}
	return q
}
