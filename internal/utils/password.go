package utils

import (
	"crypto/rand"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
)

const (
	letrasMinusculas = "abcdefghijklmnopqrstuvwxyz"
	letrasMaiusculas = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitos          = "0123456789"

	// EspeciaisAceites é o conjunto de símbolos que a política reconhece.
	EspeciaisAceites = "!@#$%^&*()_+-=[]{};:'\",.<>?/\\|`~"
	// especiaisGerados é o subconjunto usado pelo gerador.
	especiaisGerados = "!@#$%^&*()_+-=[]{}"

	TamanhoMinimoSenha = 8
	TamanhoSenhaGerada = 12
)

// HashSenha retorna o hash bcrypt da senha em texto
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// VerificarSenha compara hash bcrypt com a senha em texto puro.
func VerificarSenha(hash, senha string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}

// SenhaValida indica se a senha cumpre a política: mínimo de 8 caracteres,
// com minúscula, maiúscula, dígito e símbolo, e nenhum caractere fora destes grupos.
func SenhaValida(senha string) bool {
	if len(senha) < TamanhoMinimoSenha {
		return false
	}
	var minuscula, maiuscula, digito, especial bool
	for _, c := range senha {
		switch {
		case strings.ContainsRune(letrasMinusculas, c):
			minuscula = true
		case strings.ContainsRune(letrasMaiusculas, c):
			maiuscula = true
		case strings.ContainsRune(digitos, c):
			digito = true
		case strings.ContainsRune(EspeciaisAceites, c):
			especial = true
		default:
			return false
		}
	}
	return minuscula && maiuscula && digito && especial
}

// ValidarSenha devolve erros.SenhaFraca quando a política não é cumprida.
func ValidarSenha(senha string) error {
	if !SenhaValida(senha) {
		return erros.SenhaFraca()
	}
	return nil
}

// GerarSenha gera uma senha aleatória que cumpre sempre a política.
// Tamanhos abaixo do mínimo são elevados ao mínimo.
func GerarSenha(tamanho int) (string, error) {
	if tamanho < TamanhoMinimoSenha {
		tamanho = TamanhoMinimoSenha
	}
	todos := letrasMinusculas + letrasMaiusculas + digitos + especiaisGerados

	result := make([]byte, 0, tamanho)
	for _, grupo := range []string{letrasMinusculas, letrasMaiusculas, digitos, especiaisGerados} {
		c, err := escolher(grupo)
		if err != nil {
			return "", err
		}
		result = append(result, c)
	}
	for len(result) < tamanho {
		c, err := escolher(todos)
		if err != nil {
			return "", err
		}
		result = append(result, c)
	}

	// Fisher-Yates com crypto/rand
	for i := len(result) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		k := j.Int64()
		result[i], result[k] = result[k], result[i]
	}
	return string(result), nil
}

// GerarSenhaTemporaria gera uma senha segura de 12 caracteres.
func GerarSenhaTemporaria() (string, error) {
	return GerarSenha(TamanhoSenhaGerada)
}

func escolher(chars string) (byte, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
	if err != nil {
		return 0, err
	}
	return chars[num.Int64()], nil
}
