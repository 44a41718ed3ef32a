package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/analytics"
	"github.com/jhoicas/Gestion-api/internal/application/auth"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/finance"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/application/notification"
	"github.com/jhoicas/Gestion-api/internal/application/reporting"
	"github.com/jhoicas/Gestion-api/internal/application/sales"
	"github.com/jhoicas/Gestion-api/internal/application/settings"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/Gestion-api/internal/interfaces/http"
	"github.com/jhoicas/Gestion-api/pkg/config"
)

// newServer arma la API completa sobre almacenamiento en memoria.
func newServer(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	st, err := storage.Open(ctx, storage.NewMemoryKV(), nil)
	require.NoError(t, err)
	seed := config.SeedConfig{AdminCode: "1234", EmployeeCode: "5678", RecoveryAnswer: "sallen"}
	_, err = auth.Bootstrap(ctx, st.Users, st.UserCodes, st.Settings, seed, nil)
	require.NoError(t, err)

	notificationUC := notification.NewUseCase(st.Notifications)
	settingsUC := settings.NewUseCase(st.Settings)
	jwtCfg := auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(st.Users, st.UserCodes, st.Sessions, settingsUC, jwtCfg, nil),
		UserUC:         auth.NewUserUseCase(st.Users, st.UserCodes, st.Sessions),
		ProductUC:      inventory.NewProductUseCase(st.Products, st.Categories, settingsUC),
		CategoryUC:     inventory.NewCategoryUseCase(st.Categories, st.Products),
		SaleService:    sales.NewService(st.Tx, st.Products, st.Sales, st.Settings, notificationUC, settingsUC, nil),
		NotificationUC: notificationUC,
		FinanceUC:      finance.NewUseCase(st.Finances),
		DashboardUC:    analytics.NewDashboardUseCase(st.Products, st.Sales, st.Finances),
		SearchUC:       analytics.NewSearchUseCase(st.Products, st.Categories, st.Sales),
		ReportUC: reporting.NewUseCase(
			reporting.NewLoader(st.Products, st.Sales, st.Finances, st.Categories),
			st.Reports, st.Settings, pdf.NewMarotoPDFGenerator(),
		),
		SettingsUC: settingsUC,
		JWTSecret:  testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
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

func login(t *testing.T, app *fiber.App, name, code string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Name: name, Code: code})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, out.Token)
	return out.Token
}

// seedProduct crea una categoría y un producto con 10 unidades.
func seedProduct(t *testing.T, app *fiber.App, admin string) dto.ProductResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/categories", admin, dto.CategoryRequest{Name: "Céréales", Color: "#f59e0b"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cat := decode[dto.CategoryResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/products", admin, map[string]any{
		"name": "Riz", "category_id": cat.ID, "purchase_price": 1000, "quantity": 10, "min_stock": 5, "unit": "sac",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

func TestLogin_CodigoIncorrecto_Retorna401(t *testing.T) {
	app := newServer(t)
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Name: "Administrateur", Code: "0000"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMe_DevuelveUsuarioDelToken(t *testing.T) {
	app := newServer(t)
	token := login(t, app, "employé 1", "5678")

	resp := call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "Employé 1", me.Name)
	assert.Equal(t, "employee", me.Role)
}

func TestRecoveryQuestion_EsPublica(t *testing.T) {
	app := newServer(t)
	resp := call(t, app, http.MethodGet, "/api/auth/recovery-question", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRutasProtegidas_SinToken_Retorna401(t *testing.T) {
	app := newServer(t)
	resp := call(t, app, http.MethodGet, "/api/products", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEmpleado_NoAccedeAlTablero(t *testing.T) {
	app := newServer(t)
	token := login(t, app, "Employé 1", "5678")

	for _, path := range []string{"/api/dashboard/stats", "/api/finances", "/api/reports", "/api/users", "/api/settings"} {
		resp := call(t, app, http.MethodGet, path, token, nil)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		assert.Contains(t, string(body), "FORBIDDEN", path)
	}
}

func TestEmpleado_NoCreaProductos(t *testing.T) {
	app := newServer(t)
	token := login(t, app, "Employé 1", "5678")
	resp := call(t, app, http.MethodPost, "/api/products", token, map[string]any{"name": "Riz"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestVenta_EmpleadoVendeYElStockBaja(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "Administrateur", "1234")
	employee := login(t, app, "Employé 1", "5678")
	product := seedProduct(t, app, admin)

	resp := call(t, app, http.MethodPost, "/api/sales", employee, map[string]any{
		"product_id": product.ID, "quantity": 6, "unit_price": 1500,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := decode[dto.SaleResponse](t, resp)
	assert.Equal(t, "Employé 1", sale.EmployeeName)
	assert.Equal(t, "9000", sale.TotalAmount.String())
	assert.Equal(t, "3000", sale.Profit.String())

	resp = call(t, app, http.MethodGet, "/api/products/"+product.ID, employee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, "low", updated.Status)

	resp = call(t, app, http.MethodGet, "/api/notifications", employee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.NotificationListResponse](t, resp)
	titles := make([]string, 0, len(list.Items))
	for _, n := range list.Items {
		titles = append(titles, n.Title)
	}
	assert.Contains(t, titles, "Vente enregistrée")
	assert.Contains(t, titles, "Stock faible")
}

func TestVenta_StockInsuficiente_Retorna409(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "Administrateur", "1234")
	product := seedProduct(t, app, admin)

	resp := call(t, app, http.MethodPost, "/api/sales", admin, map[string]any{
		"product_id": product.ID, "quantity": 11, "unit_price": 1500,
	})
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
}

func TestVenta_AnularDosVeces_Retorna409(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "Administrateur", "1234")
	product := seedProduct(t, app, admin)

	resp := call(t, app, http.MethodPost, "/api/sales", admin, map[string]any{
		"product_id": product.ID, "quantity": 2, "unit_price": 1500,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := decode[dto.SaleResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/sales/"+sale.ID+"/cancel", admin, dto.CancelSaleRequest{Reason: "erreur de saisie"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/sales/"+sale.ID+"/cancel", admin, dto.CancelSaleRequest{Reason: "encore"})
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_CANCELLED", out.Code)

	resp = call(t, app, http.MethodDelete, "/api/sales/cancelled", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	count := decode[dto.CountResponse](t, resp)
	assert.Equal(t, 1, count.Count)
}

func TestProducto_Inexistente_Retorna404(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "Administrateur", "1234")
	resp := call(t, app, http.MethodGet, "/api/products/no-existe", admin, nil)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestTablero_AdminVeIndicadores(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "Administrateur", "1234")
	seedProduct(t, app, admin)

	resp := call(t, app, http.MethodGet, "/api/dashboard/stats", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[dto.DashboardStatsDTO](t, resp)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, "10000", stats.TotalStockValue.String())
}

func TestBusqueda_DisponibleParaEmpleado(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "Administrateur", "1234")
	employee := login(t, app, "Employé 1", "5678")
	seedProduct(t, app, admin)

	resp := call(t, app, http.MethodGet, "/api/search?q=riz", employee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.SearchResponse](t, resp)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Riz", out.Products[0].Name)
}

func TestReporte_ExportTexto_CabecerasDeDescarga(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "Administrateur", "1234")

	resp := call(t, app, http.MethodGet, "/api/reports/export?type=stock&period=daily", admin, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentDisposition), `attachment; filename="rapport_stock_`))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/plain")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ÉTAT DU STOCK")
}

func TestReporte_TipoDesconocido_Retorna400(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "Administrateur", "1234")

	resp := call(t, app, http.MethodPost, "/api/reports", admin, dto.GenerateReportRequest{Type: "inconnu", Period: "daily"})
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestEliminarProducto_ConContrasena(t *testing.T) {
	app := newServer(t)
	admin := login(t, app, "Administrateur", "1234")
	product := seedProduct(t, app, admin)

	resp := call(t, app, http.MethodPut, "/api/settings/delete-password", admin, dto.DeletePasswordRequest{New: "secret"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	req := httptest.NewRequest(http.MethodDelete, "/api/products/"+product.ID, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+admin)
	req.Header.Set(apphttp.DeletePasswordHeader, "mauvais")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "INVALID_DELETE_PASSWORD", out.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/products/"+product.ID, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+admin)
	req.Header.Set(apphttp.DeletePasswordHeader, "secret")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
