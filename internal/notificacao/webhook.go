package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Webhook replica cada notificação para um endpoint externo.
type Webhook struct {
	URL    string
	Client *http.Client
	Log    *zap.Logger
}

// NewWebhook devolve nil quando url está vazio; um *Webhook nil não envia nada.
func NewWebhook(url string, log *zap.Logger) *Webhook {
	if url == "" {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Webhook{URL: url, Client: &http.Client{Timeout: 5 * time.Second}, Log: log}
}

type payloadWebhook struct {
	Evento      Tipo        `json:"evento"`
	Notificacao Notificacao `json:"notificacao"`
}

// Enviar faz POST do JSON da notificação.
func (w *Webhook) Enviar(ctx context.Context, n Notificacao) error {
	if w == nil {
		return nil
	}
	body, err := json.Marshal(payloadWebhook{Evento: n.Type, Notificacao: n})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("enviar webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	return nil
}

// EnviarEmSegundoPlano envia sem bloquear o pedido; falhas só ficam no log.
func (w *Webhook) EnviarEmSegundoPlano(ctx context.Context, n Notificacao) {
	if w == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := w.Enviar(ctx, n); err != nil {
			w.Log.Warn("erro ao enviar webhook",
				zap.String("notification_id", n.ID),
				zap.Error(err))
		}
	}()
}
