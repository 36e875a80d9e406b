package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/barbearia-api/internal/adapter/api/controller"
	"github.com/hugohenrick/barbearia-api/internal/adapter/api/route"
	"github.com/hugohenrick/barbearia-api/internal/service/checkout"
	"github.com/hugohenrick/barbearia-api/internal/service/lifecycle"
	"github.com/hugohenrick/barbearia-api/internal/service/servicetest"
	"github.com/hugohenrick/barbearia-api/pkg/auth"
	"github.com/hugohenrick/barbearia-api/pkg/logger"
	"github.com/hugohenrick/barbearia-api/pkg/ratelimit"
	"github.com/hugohenrick/barbearia-api/pkg/receipt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type api struct {
	router *gin.Engine
	tokens map[string]string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := servicetest.NewStore()
	log := logger.NewNop()
	jwtService, err := auth.NewJWTService("segredo-de-teste", "")
	require.NoError(t, err)

	router := gin.New()
	v1 := router.Group("/api/v1")
	authMW := auth.JWTAuthMiddleware(jwtService)
	route.RegisterAppointmentRoutes(v1,
		controller.NewAppointmentController(lifecycle.NewService(st, log), checkout.NewService(st, log), log),
		authMW, ratelimit.NewLimiter(100, 100).Middleware())
	route.RegisterCatalogRoutes(v1, controller.NewCatalogController(st.Catalog(), log))
	route.RegisterCustomerRoutes(v1, controller.NewCustomerController(st.Customers(), log), authMW)
	route.RegisterSaleRoutes(v1, controller.NewSaleController(st.Sales(), receipt.Header{ShopName: "Barbearia"}, log), authMW)

	tokens := map[string]string{}
	for _, id := range []string{servicetest.BarberID, servicetest.OtherBarberID} {
		tok, err := jwtService.GenerateToken(id, "", time.Hour)
		require.NoError(t, err)
		tokens[id] = tok
	}
	return &api{router: router, tokens: tokens}
}

// do executa a requisição; barber vazio envia sem token
func (a *api) do(t *testing.T, method, path, barber string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if barber != "" {
		req.Header.Set("Authorization", "Bearer "+a.tokens[barber])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (a *api) book(t *testing.T, customerID string, at time.Time, freeCut bool) string {
	t.Helper()
	customer := map[string]any{"name": "Cliente"}
	if customerID != "" {
		customer["id"] = customerID
	}
	w, body := a.do(t, http.MethodPost, "/appointments", "", map[string]any{
		"barber_id":                 servicetest.BarberID,
		"service_id":                servicetest.HaircutID,
		"scheduled_at":              at.Format(time.RFC3339),
		"customer":                  customer,
		"wants_free_cut_redemption": freeCut,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return body["id"].(string)
}

func TestAppointmentHTTPFlow(t *testing.T) {
	a := newAPI(t)
	id := a.book(t, servicetest.RichID, servicetest.Day.Add(10*time.Hour), true)

	w, body := a.do(t, http.MethodPost, "/appointments/"+id+"/enqueue", servicetest.BarberID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "waiting", body["status"])
	assert.EqualValues(t, 1, body["queue_position"])

	w, body = a.do(t, http.MethodPost, "/appointments/"+id+"/start-service", servicetest.BarberID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attending", body["queue_stage"])

	w, body = a.do(t, http.MethodPost, "/appointments/"+id+"/finalize", servicetest.BarberID, map[string]any{
		"payment_method": "cash",
		"products":       []map[string]any{{"id": servicetest.PomadeID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "23500", body["subtotal"])
	assert.Equal(t, "15000", body["discount"])
	assert.Equal(t, "8500", body["final_total"])
	assert.Equal(t, true, body["free_cut_redeemed"])
	saleID := body["sale_id"].(string)

	w, _ = a.do(t, http.MethodPost, "/appointments/"+id+"/finalize", servicetest.BarberID, map[string]any{"payment_method": "cash"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, body = a.do(t, http.MethodGet, "/sales/"+saleID, servicetest.BarberID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["items"], 2)
	redemption := body["redemption"].(map[string]any)
	assert.Equal(t, servicetest.RichID, redemption["customer_id"])
	assert.Equal(t, "23500", redemption["original_amount"])
	assert.Equal(t, "15000", redemption["discount_amount"])

	w, body = a.do(t, http.MethodGet, "/appointments/"+id+"/sale", servicetest.BarberID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, saleID, body["id"])
	assert.NotNil(t, body["redemption"])

	w, _ = a.do(t, http.MethodGet, "/appointments/"+id+"/sale", servicetest.OtherBarberID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = a.do(t, http.MethodGet, "/sales/"+saleID+"/receipt", servicetest.BarberID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w, _ = a.do(t, http.MethodGet, "/sales/"+saleID, servicetest.OtherBarberID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = a.do(t, http.MethodGet, "/customers/"+servicetest.RichID+"/loyalty", servicetest.BarberID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["free_cut_credits_available"])
	assert.Len(t, body["ledger"], 3)

	// saldo anterior ao extrato aparece como não lançado
	rec := body["reconciliation"].(map[string]any)
	assert.Equal(t, false, rec["in_sync"])
	unledgered := rec["unledgered"].(map[string]any)
	assert.EqualValues(t, 10, unledgered["paid_cuts"])
	assert.EqualValues(t, 1, unledgered["free_cut_credits"])
	assert.EqualValues(t, 100, unledgered["experience_points"])
	assert.Equal(t, "200000", unledgered["spend"])
}

func TestLoyaltyOfLedgerOnlyCustomerIsInSync(t *testing.T) {
	a := newAPI(t)
	id := a.book(t, servicetest.CustomerID, servicetest.Day.Add(10*time.Hour), false)
	for _, step := range []string{"enqueue", "start-service"} {
		w, _ := a.do(t, http.MethodPost, "/appointments/"+id+"/"+step, servicetest.BarberID, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, _ := a.do(t, http.MethodPost, "/appointments/"+id+"/finalize", servicetest.BarberID, map[string]any{"payment_method": "card"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, body := a.do(t, http.MethodGet, "/customers/"+servicetest.CustomerID+"/loyalty", servicetest.BarberID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rec := body["reconciliation"].(map[string]any)
	assert.Equal(t, true, rec["in_sync"])
	assert.EqualValues(t, 1, rec["projected"].(map[string]any)["paid_cuts"])
	assert.Equal(t, "20000", rec["projected"].(map[string]any)["spend"])

	w, body = a.do(t, http.MethodGet, "/appointments/"+id+"/sale", servicetest.BarberID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, body["redemption"], "venda paga não tem registro de resgate")

	w, _ = a.do(t, http.MethodGet, "/appointments/nao-existe/sale", servicetest.BarberID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAppointmentHTTPErrors(t *testing.T) {
	a := newAPI(t)
	id := a.book(t, servicetest.CustomerID, servicetest.Day.Add(9*time.Hour), false)

	cases := []struct {
		name   string
		method string
		path   string
		barber string
		body   any
		want   int
	}{
		{"sem token", http.MethodPost, "/appointments/" + id + "/enqueue", "", nil, http.StatusUnauthorized},
		{"outro barbeiro", http.MethodPost, "/appointments/" + id + "/enqueue", servicetest.OtherBarberID, nil, http.StatusForbidden},
		{"inexistente", http.MethodPost, "/appointments/nao-existe/enqueue", servicetest.BarberID, nil, http.StatusNotFound},
		{"sentar sem fila", http.MethodPost, "/appointments/" + id + "/start-service", servicetest.BarberID, nil, http.StatusConflict},
		{"finalizar agendado", http.MethodPost, "/appointments/" + id + "/finalize", servicetest.BarberID, map[string]any{"payment_method": "cash"}, http.StatusConflict},
		{"pagamento ausente", http.MethodPost, "/appointments/" + id + "/finalize", servicetest.BarberID, map[string]any{}, http.StatusBadRequest},
		{"agenda de outro barbeiro", http.MethodGet, "/appointments/agenda?barber_id=" + servicetest.OtherBarberID, servicetest.BarberID, nil, http.StatusForbidden},
		{"data inválida", http.MethodGet, "/appointments/agenda?date=16-10-2026", servicetest.BarberID, nil, http.StatusBadRequest},
		{"slots sem barbeiro", http.MethodGet, "/appointments/reserved-slots?date=2026-10-16", "", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := a.do(t, tc.method, tc.path, tc.barber, tc.body)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
			assert.EqualValues(t, tc.want, body["code"])
		})
	}
}

func TestCreateAppointmentConflicts(t *testing.T) {
	a := newAPI(t)
	a.book(t, servicetest.CustomerID, servicetest.Day.Add(9*time.Hour), false)

	w, body := a.do(t, http.MethodPost, "/appointments", "", map[string]any{
		"barber_id":    servicetest.OtherBarberID,
		"service_id":   servicetest.HaircutID,
		"scheduled_at": servicetest.Day.Add(15 * time.Hour).Format(time.RFC3339),
		"customer":     map[string]any{"id": servicetest.CustomerID, "name": "Carlos"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, body["message"])

	w, _ = a.do(t, http.MethodPost, "/appointments", "", map[string]any{
		"barber_id":    servicetest.BarberID,
		"service_id":   "svc-desconhecido",
		"scheduled_at": servicetest.Day.Add(15 * time.Hour).Format(time.RFC3339),
		"customer":     map[string]any{"name": "Avulso"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = a.do(t, http.MethodPost, "/appointments", "", map[string]any{"barber_id": servicetest.BarberID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelAndAgenda(t *testing.T) {
	a := newAPI(t)
	first := a.book(t, "", servicetest.Day.Add(11*time.Hour), false)
	a.book(t, "", servicetest.Day.Add(9*time.Hour), false)

	w, body := a.do(t, http.MethodPost, "/appointments/"+first+"/cancel", servicetest.BarberID, map[string]any{"reason": "chuva"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", body["status"])
	assert.Equal(t, "chuva", body["cancellation_reason"])

	w, _ = a.do(t, http.MethodPost, "/appointments/"+first+"/cancel", servicetest.BarberID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = a.do(t, http.MethodGet, "/appointments/reserved-slots?barber_id="+servicetest.BarberID+"&date=2026-10-16", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["slots"], 1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/agenda?date=2026-10-16", nil)
	req.Header.Set("Authorization", "Bearer "+a.tokens[servicetest.BarberID])
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var agenda []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &agenda))
	require.Len(t, agenda, 2)
	assert.Equal(t, "Corte", agenda[0]["service"].(map[string]any)["name"])
}

func TestCatalogRoutes(t *testing.T) {
	a := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/services", nil)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var services []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &services))
	assert.Len(t, services, 2, "serviço inativo fica de fora")

	w2, _ := a.do(t, http.MethodGet, "/catalog/services/"+servicetest.InactiveID, "", nil)
	assert.Equal(t, http.StatusOK, w2.Code)
	w2, _ = a.do(t, http.MethodGet, "/catalog/services/nao-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, w2.Code)
}
