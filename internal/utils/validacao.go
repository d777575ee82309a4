package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
)

var validate = novoValidador()

func novoValidador() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Mensagens com o nome JSON do campo.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validar aplica as tags `validate` e devolve erros.PedidoInvalido com o
// primeiro campo em falha.
func Validar(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		f := ve[0]
		return erros.PedidoInvalido(fmt.Sprintf("Campo inválido: %s (%s)", f.Field(), f.Tag()))
	}
	return erros.PedidoInvalido("Pedido inválido")
}
