package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/replenishment-planner/internal/application/auth"
	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/application/planning"
	"github.com/jhoicas/replenishment-planner/internal/application/planning/planningtest"
	"github.com/jhoicas/replenishment-planner/internal/domain"
	"github.com/jhoicas/replenishment-planner/internal/domain/entity"
	"github.com/jhoicas/replenishment-planner/internal/infrastructure/pdf"
	"github.com/jhoicas/replenishment-planner/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/replenishment-planner/internal/interfaces/http"
	"github.com/jhoicas/replenishment-planner/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// App de test: router completo sobre repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

const otherOwnerID = "00000000-0000-0000-0000-000000000002"

type memUsers struct {
	mu    sync.Mutex
	byKey map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byKey[u.Identifier]; ok {
		return domain.ErrIdentifierAlreadyExists
	}
	cp := *u
	m.byKey[u.Identifier] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byKey {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byKey[identifier], nil
}

func buildApp(t *testing.T) (*fiber.App, *planningtest.Store) {
	t.Helper()
	store := planningtest.NewStore()
	clock := func() time.Time { return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC) }

	planningUC := planning.NewPlanningUseCase(store, clock)
	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(&memUsers{byKey: map[string]*entity.User{}}, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		CatalogUC:  planning.NewCatalogUseCase(store, decimal.RequireFromString("1.65"), clock),
		PlanningUC: planningUC,
		ExportUC:   planning.NewExportUseCase(planningUC, xlsx.NewExcelizeExporter(), pdf.NewMarotoPlanGenerator(), clock),
		JWTSecret:  testJWTSecret,
	}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, deps)
	return app, store
}

func call(t *testing.T, app *fiber.App, method, path, bearer string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func saveReference(t *testing.T, app *fiber.App, bearer string) {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/products", bearer, map[string]any{
		"sku":            "A-1",
		"name":           "Taza",
		"lead_time_days": 14,
		"z_value":        1.65,
		"sales": []map[string]int{
			{"year": 2024, "month": 1, "units_sold": 60},
			{"year": 2024, "month": 2, "units_sold": 90},
			{"year": 2024, "month": 3, "units_sold": 120},
		},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegistroYLogin(t *testing.T) {
	app, _ := buildApp(t)

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Identifier: "Ana", Password: "secreto123"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	user := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "ana", user.Identifier)

	resp = call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Identifier: "ANA", Password: "secreto123"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Identifier: "ana", Password: "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)

	resp = call(t, app, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, user.ID, me.ID)
}

func TestAuth_LoginIncorrecto_401(t *testing.T) {
	app, _ := buildApp(t)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Identifier: "nadie", Password: "x"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRutasProtegidas_SinToken_401(t *testing.T) {
	app, _ := buildApp(t)

	for _, path := range []string{"/api/products", "/api/plan", "/api/export/plan.pdf"} {
		resp := call(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_GuardarYConsultarDetalle(t *testing.T) {
	app, _ := buildApp(t)
	bearer := bearerFor(t, testOwnerID)
	saveReference(t, app, bearer)

	resp := call(t, app, http.MethodGet, "/api/products/A-1", bearer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ProductPlanDTO](t, resp)

	assert.Equal(t, []string{"2024-03", "2024-02", "2024-01"}, out.WindowMonths)
	assert.Equal(t, "186.1737", out.Metrics.OrderQuantity.String())
	assert.Equal(t, 186, out.Metrics.OrderUnits)
	assert.Len(t, out.Trend, 6)
}

func TestProducts_AisladoPorPropietario_404(t *testing.T) {
	app, _ := buildApp(t)
	saveReference(t, app, bearerFor(t, testOwnerID))

	resp := call(t, app, http.MethodGet, "/api/products/A-1", bearerFor(t, otherOwnerID), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	list := decode[dto.ProductListResponse](t, call(t, app, http.MethodGet, "/api/products", bearerFor(t, otherOwnerID), nil))
	assert.Zero(t, list.Total)
}

func TestProducts_EntradaInvalida_400(t *testing.T) {
	app, _ := buildApp(t)

	resp := call(t, app, http.MethodPost, "/api/products", bearerFor(t, testOwnerID), map[string]any{
		"sku": "A-1", "lead_time_days": 0,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestProducts_CuerpoMalformado_400(t *testing.T) {
	app, _ := buildApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, testOwnerID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProducts_ActualizarVentas_RecalculaMetricas(t *testing.T) {
	app, _ := buildApp(t)
	bearer := bearerFor(t, testOwnerID)
	saveReference(t, app, bearer)

	resp := call(t, app, http.MethodPut, "/api/products/A-1/sales", bearer, dto.UpsertSalesRequest{
		Sales: []dto.MonthlySaleInput{
			{Year: 2024, Month: 1, UnitsSold: 90},
			{Year: 2024, Month: 3, UnitsSold: 90},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ProductPlanDTO](t, resp)

	assert.Equal(t, []int{90, 90, 90}, out.ObservedUnits)
	assert.True(t, out.Metrics.StdDailyDemand.IsZero())
	assert.Equal(t, "180", out.Metrics.OrderQuantity.String())
}

func TestProducts_ActualizarVentas_SkuInexistente_404(t *testing.T) {
	app, _ := buildApp(t)

	resp := call(t, app, http.MethodPut, "/api/products/NOPE/sales", bearerFor(t, testOwnerID), dto.UpsertSalesRequest{
		Sales: []dto.MonthlySaleInput{{Year: 2024, Month: 1, UnitsSold: 1}},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProducts_Eliminar(t *testing.T) {
	app, store := buildApp(t)
	bearer := bearerFor(t, testOwnerID)
	saveReference(t, app, bearer)

	resp := call(t, app, http.MethodDelete, "/api/products/A-1", bearer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Zero(t, store.SalesCount())

	resp = call(t, app, http.MethodDelete, "/api/products/A-1", bearer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Plan, calculador y exportaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestPlan_SoloPedidosPositivos(t *testing.T) {
	app, _ := buildApp(t)
	bearer := bearerFor(t, testOwnerID)
	saveReference(t, app, bearer)
	resp := call(t, app, http.MethodPost, "/api/products", bearer, map[string]any{"sku": "SIN-VENTAS", "lead_time_days": 7})
	resp.Body.Close()

	plan := decode[dto.OrderPlanResponse](t, call(t, app, http.MethodGet, "/api/plan", bearer, nil))
	require.Equal(t, 1, plan.Total)
	assert.Equal(t, "A-1", plan.Items[0].Product.SKU)
	assert.Equal(t, planning.OrderQuantityLabel, plan.OrderQuantityLabel)
}

func TestCalculate_VectorReferencia(t *testing.T) {
	app, _ := buildApp(t)

	resp := call(t, app, http.MethodPost, "/api/replenishment/calculate", bearerFor(t, testOwnerID), map[string]any{
		"lead_time_days": 14,
		"z_value":        "1.65",
		"monthly_units":  []int{60, 90, 120},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.MetricsDTO](t, resp)
	assert.Equal(t, "48.1737", out.ReorderPoint.String())
	assert.Equal(t, dto.HistoryStatusOK, out.HistoryStatus)
}

func TestCalculate_LeadTimeInvalido_400(t *testing.T) {
	app, _ := buildApp(t)

	resp := call(t, app, http.MethodPost, "/api/replenishment/calculate", bearerFor(t, testOwnerID), map[string]any{
		"lead_time_days": 0, "z_value": "1.65",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExport_ContentTypeYAdjunto(t *testing.T) {
	app, _ := buildApp(t)
	bearer := bearerFor(t, testOwnerID)
	saveReference(t, app, bearer)

	casos := map[string]string{
		"/api/export/products.xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"/api/export/plan.xlsx":     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"/api/export/plan.pdf":      "application/pdf",
	}
	for path, contentType := range casos {
		resp := call(t, app, http.MethodGet, path, bearer, nil)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, contentType, resp.Header.Get("Content-Type"), path)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "20240315", path)
		assert.NotEmpty(t, body, path)
	}
}

func TestRutaInexistente_404JSON(t *testing.T) {
	app, _ := buildApp(t)

	resp := call(t, app, http.MethodGet, "/no-existe", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "HTTP_ERROR")
}
