package notificacao

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const tempoEscrita = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// cliente é uma ligação websocket; gorilla só admite um escritor de cada vez.
type cliente struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *cliente) enviar(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(tempoEscrita))
	return c.conn.WriteJSON(v)
}

// Hub guarda as ligações websocket abertas de cada utilizador.
type Hub struct {
	mu       sync.Mutex
	clientes map[string]map[*cliente]struct{}
	log      *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{clientes: map[string]map[*cliente]struct{}{}, log: log}
}

func (h *Hub) registar(userID string, c *cliente) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clientes[userID] == nil {
		h.clientes[userID] = map[*cliente]struct{}{}
	}
	h.clientes[userID][c] = struct{}{}
}

func (h *Hub) remover(userID string, c *cliente) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clientes[userID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.clientes, userID)
		}
	}
}

// ligacoesDe copia as ligações de userID para escrever fora do lock.
func (h *Hub) ligacoesDe(userID string) []*cliente {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*cliente, 0, len(h.clientes[userID]))
	for c := range h.clientes[userID] {
		out = append(out, c)
	}
	return out
}

// Ligacoes devolve quantas ligações userID tem abertas.
func (h *Hub) Ligacoes(userID string) int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clientes[userID])
}

// Publicar envia n a todas as ligações do destinatário. Ligações que falham
// são fechadas e esquecidas.
func (h *Hub) Publicar(n Notificacao) {
	if h == nil {
		return
	}
	for _, c := range h.ligacoesDe(n.UserID) {
		if err := c.enviar(n); err != nil {
			h.log.Debug("ligação websocket removida", zap.String("user_id", n.UserID), zap.Error(err))
			_ = c.conn.Close()
			h.remover(n.UserID, c)
		}
	}
}

// Servir faz upgrade do pedido e mantém a ligação até o cliente a fechar.
func (h *Hub) Servir(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	c := &cliente{conn: conn}
	h.registar(userID, c)
	defer h.remover(userID, c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
