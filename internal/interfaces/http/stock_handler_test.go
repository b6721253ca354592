package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/stock"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Produccion-api/internal/interfaces/http"
	"github.com/jhoicas/Produccion-api/internal/testutil"
	pkgjwt "github.com/jhoicas/Produccion-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: API completa sobre el storage en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	idTornillo = "00000000-0000-0000-0000-0000000000a1"
	idTuerca   = "00000000-0000-0000-0000-0000000000a2"
	idMesa     = "00000000-0000-0000-0000-0000000000f1"
	idOrden    = "00000000-0000-0000-0000-0000000000d1"
)

// buildAPI arma la aplicación con el router real y todos los casos de uso
// cableados sobre el storage en memoria, igual que main pero sin BD ni broker.
func buildAPI() (*fiber.App, *testutil.MemStore) {
	store := testutil.NewMemStore()
	notifier := stock.NewLowStockNotifier(store.ProductRepo(), store.EntryRepo(), nil, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		StockUC:   stock.NewStockUseCase(store, notifier),
		QueryUC:   stock.NewQueryUseCase(store.EntryRepo(), store.ProductRepo()),
		ConsumeUC: stock.NewConsumeOrderUseCase(store, notifier),
		ProductUC: usecase.NewProductUseCase(store.ProductRepo()),
		OrderUC:   usecase.NewOrderUseCase(store.OrderRepo()),
		JWTSecret: testJWTSecret,
	})
	return app, store
}

func seedTornillo(store *testutil.MemStore, balance, minAlert int64) {
	store.SeedProduct(entity.Product{
		ID:            idTornillo,
		SKU:           "MAT-001",
		Name:          "Tornillo",
		Unit:          "unidad",
		MinStockAlert: minAlert,
	})
	if balance != 0 {
		store.SeedBalance(idTornillo, balance)
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path, role string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/stock/adjustments
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustEndpoint_Exitoso(t *testing.T) {
	app, store := buildAPI()
	seedTornillo(store, 100, 0)

	resp := doJSON(t, app, http.MethodPost, "/api/stock/adjustments", "inventario", fiber.Map{
		"product_id": idTornillo,
		"delta":      "-30",
		"reason":     "conteo físico",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "OUT", body["type"])
	assert.Equal(t, float64(30), body["quantity"])
	assert.Equal(t, float64(70), body["balance_after"])
	assert.Equal(t, "MANUAL_ADJUSTMENT", body["source_type"])
	assert.Equal(t, testActorID, body["source_id"], "el actor del token queda como origen")
}

func TestAdjustEndpoint_DeltaFraccionario_Retorna400(t *testing.T) {
	app, store := buildAPI()
	seedTornillo(store, 100, 0)

	resp := doJSON(t, app, http.MethodPost, "/api/stock/adjustments", "inventario", fiber.Map{
		"product_id": idTornillo,
		"delta":      "2.5",
		"reason":     "fraccionado",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"las unidades del ledger son enteras")
	body := decodeBody(t, resp)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestAdjustEndpoint_SinMotivo_Retorna400(t *testing.T) {
	app, store := buildAPI()
	seedTornillo(store, 100, 0)

	resp := doJSON(t, app, http.MethodPost, "/api/stock/adjustments", "admin", fiber.Map{
		"product_id": idTornillo,
		"delta":      "-5",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdjustEndpoint_Sobregiro_Retorna409(t *testing.T) {
	app, store := buildAPI()
	seedTornillo(store, 10, 0)

	resp := doJSON(t, app, http.MethodPost, "/api/stock/adjustments", "inventario", fiber.Map{
		"product_id": idTornillo,
		"delta":      "-25",
		"reason":     "merma",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Equal(t, idTornillo, body["product_id"])
	assert.Equal(t, float64(10), body["available"])
	assert.Equal(t, float64(25), body["required"])
}

func TestAdjustEndpoint_ProductoInexistente_Retorna404(t *testing.T) {
	app, _ := buildAPI()

	resp := doJSON(t, app, http.MethodPost, "/api/stock/adjustments", "admin", fiber.Map{
		"product_id": "no-existe",
		"delta":      "5",
		"reason":     "carga",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdjustEndpoint_TokenSinActor_Retorna401(t *testing.T) {
	app, store := buildAPI()
	seedTornillo(store, 100, 0)

	// Token firmado pero sin actor_id: pasa el middleware, pero el ajuste
	// exige saber quién lo hizo.
	tok, err := pkgjwt.Generate(testJWTSecret, "", "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	raw, err := json.Marshal(fiber.Map{"product_id": idTornillo, "delta": "-5", "reason": "sin actor"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/stock/adjustments", bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
	require.Len(t, store.EntriesFor(idTornillo), 1, "nada debe persistirse sin actor identificado")
}

func TestAdjustEndpoint_RolProduccion_Retorna403(t *testing.T) {
	app, store := buildAPI()
	seedTornillo(store, 100, 0)

	resp := doJSON(t, app, http.MethodPost, "/api/stock/adjustments", "produccion", fiber.Map{
		"product_id": idTornillo,
		"delta":      "-5",
		"reason":     "no autorizado",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"produccion no ajusta stock manualmente")
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/stock/:productId/balance y /entries
// ──────────────────────────────────────────────────────────────────────────────

func TestBalanceEndpoint(t *testing.T) {
	app, store := buildAPI()
	seedTornillo(store, 42, 0)

	resp := doJSON(t, app, http.MethodGet, "/api/stock/"+idTornillo+"/balance", "produccion", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(42), body["balance"])
}

func TestBalanceEndpoint_SinEntradas_RetornaCero(t *testing.T) {
	app, store := buildAPI()
	seedTornillo(store, 0, 0)

	resp := doJSON(t, app, http.MethodGet, "/api/stock/"+idTornillo+"/balance", "admin", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(0), body["balance"], "producto sin movimientos tiene balance 0, no error")
}

func TestBalanceEndpoint_ProductoInexistente_Retorna404(t *testing.T) {
	app, _ := buildAPI()

	resp := doJSON(t, app, http.MethodGet, "/api/stock/no-existe/balance", "admin", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEntriesEndpoint_HistorialMasRecientePrimero(t *testing.T) {
	app, store := buildAPI()
	seedTornillo(store, 100, 0)

	resp := doJSON(t, app, http.MethodPost, "/api/stock/adjustments", "inventario", fiber.Map{
		"product_id": idTornillo,
		"delta":      "-30",
		"reason":     "conteo",
	})
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/stock/"+idTornillo+"/entries", "inventario", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	entries := body["entries"].([]interface{})
	require.Len(t, entries, 2)
	first := entries[0].(map[string]interface{})
	assert.Equal(t, float64(70), first["balance_after"], "el ajuste más reciente va primero")
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/stock/alerts
// ──────────────────────────────────────────────────────────────────────────────

func TestAlertsEndpoint(t *testing.T) {
	app, store := buildAPI()
	seedTornillo(store, 15, 20) // 15 ≤ 20: en alerta
	store.SeedProduct(entity.Product{ID: idTuerca, SKU: "MAT-002", Name: "Tuerca", MinStockAlert: 5})
	store.SeedBalance(idTuerca, 50) // 50 > 5: fuera de alerta

	resp := doJSON(t, app, http.MethodGet, "/api/stock/alerts", "inventario", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["total"])
	alerts := body["alerts"].([]interface{})
	require.Len(t, alerts, 1)
	alert := alerts[0].(map[string]interface{})
	assert.Equal(t, idTornillo, alert["product_id"])
	assert.Equal(t, float64(15), alert["current_stock"])
	assert.Equal(t, float64(20), alert["min_stock_level"])
}
