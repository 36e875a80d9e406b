package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/barbearia-api/internal/adapter/repository/memory"
	"github.com/hugohenrick/barbearia-api/internal/domain/catalog"
	"github.com/hugohenrick/barbearia-api/internal/domain/sale"
	"github.com/hugohenrick/barbearia-api/pkg/auth"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
	"github.com/hugohenrick/barbearia-api/pkg/receipt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReceiptRouter(t *testing.T, render func(io.Writer, receipt.Header, *sale.Sale) error) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := memory.NewStore()
	items := []sale.Item{sale.NewItem(catalog.KindService, "svc-1", "Corte", 1, decimal.NewFromInt(20000))}
	s, err := sale.NewSale("apt-1", "barber-1", nil, "Avulso", sale.PaymentCash, "", items, decimal.Zero, false, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, st.Sales().Create(context.Background(), s))

	c := NewSaleController(st.Sales(), receipt.Header{ShopName: "Barbearia"}, logger.NewNop())
	c.render = render

	r := gin.New()
	r.Use(func(ctx *gin.Context) { ctx.Set(auth.ContextBarberID, "barber-1") })
	r.GET("/sales/:id/receipt", c.Receipt)
	return r, s.ID
}

func TestReceiptRenderFailureReturns500WithoutPartialPDF(t *testing.T) {
	r, id := newReceiptRouter(t, func(w io.Writer, _ receipt.Header, _ *sale.Sale) error {
		_, _ = w.Write([]byte("%PDF-1.3 truncado"))
		return errors.New("fonte indisponível")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sales/"+id+"/receipt", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEqual(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.NotContains(t, w.Body.String(), "%PDF-")
}

func TestReceiptSendsRenderedPDF(t *testing.T) {
	r, id := newReceiptRouter(t, receipt.Render)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sales/"+id+"/receipt", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "comprovante-"+id)
	assert.Equal(t, "%PDF-", w.Body.String()[:5])
}
