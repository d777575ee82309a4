package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
	"github.com/hugoalbmartins/Leiritrix/internal/utils"
)

// Recuperar converte um panic num 500 e regista a stack.
func Recuperar(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					log.Error("panic recuperado",
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Any("panic", p),
						zap.Stack("stack"))
					utils.ResponderErro(w, r, erros.Interno(fmt.Errorf("panic: %v", p)))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
