package notificacao

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hugoalbmartins/Leiritrix/internal/erros"
	"github.com/hugoalbmartins/Leiritrix/internal/venda"
)

type gestoresFake struct {
	ids []string
	err error
}

func (g gestoresFake) ListarGestoresAtivos(context.Context) ([]string, error) {
	return g.ids, g.err
}

func novoService(t *testing.T, dest Destinatarios) *Service {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&Notificacao{}))

	s := NewService(NewRepository(gdb), dest, NewHub(nil), nil, nil)
	s.agora = func() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestVendaCriadaDistribui(t *testing.T) {
	ctx := context.Background()
	s := novoService(t, gestoresFake{ids: []string{"adm", "bo"}})
	v := &venda.Venda{ID: "s1", ClientName: "Joana", Category: venda.CategoriaEnergia, SellerID: "vend"}

	s.VendaCriada(ctx, v)

	for _, id := range []string{"adm", "bo"} {
		list, err := s.Listar(ctx, id)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Nova venda registada", list[0].Title)
		assert.Equal(t, "Nova venda criada: Joana - energia", list[0].Message)
		assert.Equal(t, TipoVendaCriada, list[0].Type)
		assert.Equal(t, "s1", list[0].SaleID)
		assert.False(t, list[0].Read)
	}

	list, err := s.Listar(ctx, "vend")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A sua venda foi registada: Joana", list[0].Message)
}

func TestEstadoAlteradoVendedorGestor(t *testing.T) {
	ctx := context.Background()
	s := novoService(t, gestoresFake{ids: []string{"adm"}})
	v := &venda.Venda{ID: "s1", ClientName: "Rui", Status: venda.StatusAtivo, SellerID: "adm"}

	s.EstadoAlterado(ctx, v)

	list, err := s.Listar(ctx, "adm")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Estado de venda alterado", list[0].Title)
	assert.Equal(t, "Venda Rui agora está: ativo", list[0].Message)
}

func TestEstadoAlteradoParaVendedor(t *testing.T) {
	ctx := context.Background()
	s := novoService(t, gestoresFake{})
	s.EstadoAlterado(ctx, &venda.Venda{ID: "s1", ClientName: "Rui", Status: venda.StatusPerdido, SellerID: "vend"})

	list, err := s.Listar(ctx, "vend")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Estado da sua venda alterado", list[0].Title)
	assert.Equal(t, "A venda Rui agora está: perdido", list[0].Message)
	assert.Equal(t, TipoEstadoAlterado, list[0].Type)
}

func TestFalhaDeDestinatariosNaoPropaga(t *testing.T) {
	s := novoService(t, gestoresFake{err: errors.New("db em baixo")})
	assert.NotPanics(t, func() {
		s.VendaCriada(context.Background(), &venda.Venda{ID: "s1", SellerID: "vend"})
	})
}

func TestMarcarLidas(t *testing.T) {
	ctx := context.Background()
	s := novoService(t, gestoresFake{ids: []string{"adm"}})
	s.VendaCriada(ctx, &venda.Venda{ID: "s1", ClientName: "A", SellerID: "vend"})
	s.VendaCriada(ctx, &venda.Venda{ID: "s2", ClientName: "B", SellerID: "vend"})

	n, err := s.ContarNaoLidas(ctx, "adm")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	list, err := s.Listar(ctx, "adm")
	require.NoError(t, err)

	assert.ErrorIs(t, s.MarcarLida(ctx, "vend", list[0].ID), erros.ErrNaoEncontrado)
	require.NoError(t, s.MarcarLida(ctx, "adm", list[0].ID))

	n, err = s.ContarNaoLidas(ctx, "adm")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	alteradas, err := s.MarcarTodasLidas(ctx, "adm")
	require.NoError(t, err)
	assert.EqualValues(t, 1, alteradas)

	n, err = s.ContarNaoLidas(ctx, "vend")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestHubPublicaParaODestinatario(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Servir(w, r, r.URL.Query().Get("user"))
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?user=adm"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Ligacoes("adm") == 1 }, time.Second, 10*time.Millisecond)

	hub.Publicar(Notificacao{ID: "n2", UserID: "outro", Title: "ignorada"})
	hub.Publicar(Notificacao{ID: "n1", UserID: "adm", Title: "Nova venda registada"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Notificacao
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "n1", got.ID)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Ligacoes("adm") == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubEscritaLentaNaoBloqueiaOsOutros(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Servir(w, r, r.URL.Query().Get("user"))
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?user=adm"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Ligacoes("adm") == 1 }, time.Second, 10*time.Millisecond)

	lento := hub.ligacoesDe("adm")[0]
	lento.mu.Lock()

	publicado := make(chan struct{})
	go func() {
		hub.Publicar(Notificacao{ID: "n1", UserID: "adm"})
		close(publicado)
	}()

	// com uma escrita pendente, o hub continua a responder
	outro := make(chan struct{})
	go func() {
		hub.Publicar(Notificacao{ID: "n2", UserID: "vend"})
		hub.registar("vend", &cliente{})
		_ = hub.Ligacoes("adm")
		close(outro)
	}()
	select {
	case <-outro:
	case <-time.After(time.Second):
		t.Fatal("hub bloqueado por uma escrita pendente")
	}

	lento.mu.Unlock()
	<-publicado

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Notificacao
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "n1", got.ID)
}

func TestWebhookEnviar(t *testing.T) {
	var recebido payloadWebhook
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &recebido)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, nil)
	require.NoError(t, wh.Enviar(context.Background(), Notificacao{ID: "n1", Type: TipoVendaCriada}))
	assert.Equal(t, TipoVendaCriada, recebido.Evento)
	assert.Equal(t, "n1", recebido.Notificacao.ID)

	falha := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer falha.Close()
	assert.Error(t, NewWebhook(falha.URL, nil).Enviar(context.Background(), Notificacao{}))

	var nada *Webhook
	assert.Nil(t, NewWebhook("", nil))
	assert.NoError(t, nada.Enviar(context.Background(), Notificacao{}))
}
