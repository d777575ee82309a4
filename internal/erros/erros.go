// Package erros define a taxonomia de erros do CRM e a sua tradução para HTTP.
package erros

import (
	"errors"
	"net/http"
)

// Codigo identifica uma classe de erro estável, verificável pelo cliente.
type Codigo string

const (
	CodigoNaoAutenticado      Codigo = "nao_autenticado"
	CodigoContaDesativada     Codigo = "conta_desativada"
	CodigoProibido            Codigo = "proibido"
	CodigoNaoEncontrado       Codigo = "nao_encontrado"
	CodigoConflito            Codigo = "conflito"
	CodigoParceiroInvalido    Codigo = "parceiro_invalido"
	CodigoFormatoDataInvalido Codigo = "formato_data_invalido"
	CodigoSenhaFraca          Codigo = "senha_fraca"
	CodigoPedidoInvalido      Codigo = "pedido_invalido"
	CodigoOperacaoInvalida    Codigo = "operacao_invalida"
	CodigoInterno             Codigo = "erro_interno"
)

// Erro é um erro de domínio com código e mensagem para o utilizador.
type Erro struct {
	Codigo   Codigo
	Mensagem string
	Err      error
}

func (e *Erro) Error() string {
	if e.Err != nil {
		return e.Mensagem + ": " + e.Err.Error()
	}
	return e.Mensagem
}

func (e *Erro) Unwrap() error {
	return e.Err
}

// Is compara pelo código, permitindo errors.Is(err, erros.ErrNaoEncontrado).
func (e *Erro) Is(target error) bool {
	t, ok := target.(*Erro)
	if !ok {
		return false
	}
	return t.Codigo == e.Codigo
}

// Sentinelas para errors.Is.
var (
	ErrNaoAutenticado      = &Erro{Codigo: CodigoNaoAutenticado, Mensagem: "Não autenticado"}
	ErrContaDesativada     = &Erro{Codigo: CodigoContaDesativada, Mensagem: "Conta desativada"}
	ErrProibido            = &Erro{Codigo: CodigoProibido, Mensagem: "Acesso negado"}
	ErrNaoEncontrado       = &Erro{Codigo: CodigoNaoEncontrado, Mensagem: "Não encontrado"}
	ErrConflito            = &Erro{Codigo: CodigoConflito, Mensagem: "Conflito"}
	ErrParceiroInvalido    = &Erro{Codigo: CodigoParceiroInvalido, Mensagem: "Parceiro não encontrado ou inativo"}
	ErrFormatoDataInvalido = &Erro{Codigo: CodigoFormatoDataInvalido, Mensagem: "Formato de data inválido"}
	ErrSenhaFraca          = &Erro{Codigo: CodigoSenhaFraca, Mensagem: "Password fraca"}
	ErrPedidoInvalido      = &Erro{Codigo: CodigoPedidoInvalido, Mensagem: "Pedido inválido"}
	ErrOperacaoInvalida    = &Erro{Codigo: CodigoOperacaoInvalida, Mensagem: "Operação inválida"}
)

func novo(c Codigo, msg string) *Erro {
	return &Erro{Codigo: c, Mensagem: msg}
}

func NaoAutenticado(msg string) *Erro { return novo(CodigoNaoAutenticado, msg) }
func ContaDesativada() *Erro { return novo(CodigoContaDesativada, "Conta desativada") }
func Proibido(msg string) *Erro { return novo(CodigoProibido, msg) }
func NaoEncontrado(msg string) *Erro { return novo(CodigoNaoEncontrado, msg) }
func Conflito(msg string) *Erro { return novo(CodigoConflito, msg) }
func ParceiroInvalido() *Erro { return novo(CodigoParceiroInvalido, "Parceiro não encontrado ou inativo") }
func FormatoDataInvalido() *Erro { return novo(CodigoFormatoDataInvalido, "Formato de data inválido") }
func PedidoInvalido(msg string) *Erro { return novo(CodigoPedidoInvalido, msg) }
func OperacaoInvalida(msg string) *Erro { return novo(CodigoOperacaoInvalida, msg) }

// SenhaFraca descreve a política violada.
func SenhaFraca() *Erro {
	return novo(CodigoSenhaFraca, "A password deve ter pelo menos 8 caracteres, uma minúscula, uma maiúscula, um número e um caractere especial")
}

// Interno embrulha uma falha inesperada (base de dados, rede).
func Interno(err error) *Erro {
	return &Erro{Codigo: CodigoInterno, Mensagem: "Erro interno", Err: err}
}

// De extrai o *Erro de uma cadeia; falhas desconhecidas tornam-se internas.
func De(err error) *Erro {
	var e *Erro
	if errors.As(err, &e) {
		return e
	}
	return Interno(err)
}

// Status devolve o código HTTP correspondente.
func (e *Erro) Status() int {
	switch e.Codigo {
	case CodigoNaoAutenticado, CodigoContaDesativada:
		return http.StatusUnauthorized
	case CodigoProibido:
		return http.StatusForbidden
	case CodigoNaoEncontrado:
		return http.StatusNotFound
	case CodigoConflito:
		return http.StatusConflict
	case CodigoParceiroInvalido, CodigoFormatoDataInvalido, CodigoSenhaFraca,
		CodigoPedidoInvalido, CodigoOperacaoInvalida:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
