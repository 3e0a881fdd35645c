package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailpos-api/internal/application/service"
	"github.com/sangkips/retailpos-api/internal/config"
	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/invoice"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/internal/infrastructure/cache"
	"github.com/sangkips/retailpos-api/internal/infrastructure/memory"
	"github.com/sangkips/retailpos-api/internal/infrastructure/metrics"
	"github.com/sangkips/retailpos-api/internal/infrastructure/spreadsheet"
	"github.com/sangkips/retailpos-api/internal/presentation/http/handler"
	"github.com/sangkips/retailpos-api/internal/presentation/http/middleware"
	"github.com/sangkips/retailpos-api/pkg/oauth"
	"github.com/sangkips/retailpos-api/pkg/printer"
	"github.com/sangkips/retailpos-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerEmail = "owner@shop.test"

type pdfStub struct{}

func (pdfStub) Render(context.Context, *invoice.Layout) ([]byte, error) { return []byte("%PDF-1.4"), nil }
func (pdfStub) Extension() string                                       { return "pdf" }
func (pdfStub) ContentType() string                                     { return "application/pdf" }

type testServer struct {
	router *gin.Engine
	jwt    *utils.JWTManager
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, limiter *middleware.IdentityRateLimiter) *testServer {
	t.Helper()
	return newTestServerWithBills(t, limiter, nil)
}

// newTestServerWithBills lets a test wrap the bill repository used for saving bills.
func newTestServerWithBills(t *testing.T, limiter *middleware.IdentityRateLimiter, wrap func(repository.BillRepository) repository.BillRepository) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memory.NewStore()
	cacheStore := cache.NewMemoryStore()
	m := metrics.New()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)

	guard := service.NewAccessGuard(store.AuthorizedUsers(), ownerEmail, logger)
	require.NoError(t, guard.EnsureMaster(context.Background()))
	authService := service.NewAuthService(guard, oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{}), jwtManager)

	bills := store.Bills()
	if wrap != nil {
		bills = wrap(bills)
	}
	reports := service.NewReportService(store.Bills(), cacheStore, time.Minute, m, logger)
	billing := service.NewBillingService(bills, store.Products(), m, time.UTC, reports)
	settings := service.NewSettingsService(store.Settings())
	invoices := service.NewInvoiceService(billing, settings, pdfStub{}, m, logger, service.InvoiceOptions{
		CurrencySymbol:      "Rs.",
		PublicBaseURL:       "https://pos.example.com",
		WhatsAppCountryCode: "91",
	})
	printers := service.NewPrinterService(printer.NewNullPrinter(), billing, settings, printer.TypeNone, logger)

	handlers := &Handlers{
		Auth:     handler.NewAuthHandler(authService, handler.AuthRedirects{SuccessURL: "http://app.test/ok", ErrorURL: "http://app.test/err"}),
		Product:  handler.NewProductHandler(service.NewProductService(store.Products())),
		Category: handler.NewCategoryHandler(service.NewCategoryService(store.Categories())),
		Bill:     handler.NewBillHandler(billing, invoices, printers),
		Customer: handler.NewCustomerHandler(service.NewCustomerService(store.Bills())),
		Report:   handler.NewReportHandler(reports),
		Settings: handler.NewSettingsHandler(settings),
		Printer:  handler.NewPrinterHandler(printers),
		Access:   handler.NewAccessHandler(guard),
		Public:   handler.NewPublicHandler(invoices),
	}

	router := Setup(handlers, &Deps{
		Cfg:         &config.Config{App: config.AppConfig{Name: "retailpos-test"}},
		AuthService: authService,
		Metrics:     m,
		Cache:       cacheStore,
		RateLimiter: limiter,
		Logger:      logger,
	})
	return &testServer{router: router, jwt: jwtManager}
}

func (s *testServer) token(t *testing.T, email, role string) string {
	t.Helper()
	token, err := s.jwt.GenerateAccessToken(email, role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if dst != nil {
		require.NoError(t, json.Unmarshal(env.Data, dst))
	}
	return env
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "retailpos-test")

	w = srv.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "retailpos_http_requests_total")
}

func TestProtectedRoutesRequireAllowListedToken(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = srv.do(t, http.MethodGet, "/api/v1/products", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/products", srv.token(t, "stranger@shop.test", "staff"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/profile", srv.token(t, ownerEmail, "master"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		User struct {
			Email           string `json:"email"`
			CanManageAccess bool   `json:"can_manage_access"`
		} `json:"user"`
	}
	decode(t, w, &profile)
	assert.Equal(t, ownerEmail, profile.User.Email)
	assert.True(t, profile.User.CanManageAccess)
}

func TestGoogleAuthNotConfigured(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodGet, "/api/v1/auth/google", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/auth/google/callback?state=x&code=y", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "http://app.test/err?error=")
}

func TestProductAndCategoryFlow(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.token(t, ownerEmail, "master")

	w := srv.do(t, http.MethodPost, "/api/v1/categories", token, map[string]any{"name": "Grains"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = srv.do(t, http.MethodPost, "/api/v1/categories", token, map[string]any{"name": "grains"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/products", token, map[string]any{
		"name": "Rice", "unit_type": "weight", "unit_value": 1000, "category": "Grains", "price": 120,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var product struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
	}
	decode(t, w, &product)
	require.NotEmpty(t, product.ID)

	w = srv.do(t, http.MethodPost, "/api/v1/products", token, map[string]any{
		"name": "Oil", "unit_type": "litre", "unit_value": 1, "price": 10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPut, "/api/v1/products/"+product.ID, token, map[string]any{"price": 130})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &product)
	assert.Equal(t, 130.0, product.Price)

	w = srv.do(t, http.MethodGet, "/api/v1/products?search=ric&unit_type=weight", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	decode(t, w, &page)
	require.Len(t, page.Items, 1)

	w = srv.do(t, http.MethodGet, "/api/v1/products?unit_type=litre", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = srv.do(t, http.MethodDelete, "/api/v1/products/"+product.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = srv.do(t, http.MethodGet, "/api/v1/products/"+product.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type billBody struct {
	ID         string  `json:"id"`
	BillNumber int64   `json:"bill_number"`
	FinalTotal float64 `json:"final_total"`
}

func sampleBill() map[string]any {
	return map[string]any{
		"customer_name":    "Asha Rao",
		"customer_number":  "9876543210",
		"billing_date":     "2024-03-05",
		"billing_time":     "12:00",
		"mode_of_payment":  "cash",
		"overall_discount": 5,
		"items": []map[string]any{
			{"name": "Rice", "quantity": 2, "unit_price": 50},
		},
	}
}

func TestBillCreateIsIdempotent(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.token(t, ownerEmail, "master")

	first := srv.do(t, http.MethodPost, "/api/v1/bills", token, sampleBill(), "Idempotency-Key", "abc")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	var bill billBody
	decode(t, first, &bill)
	assert.Equal(t, int64(1), bill.BillNumber)
	assert.Equal(t, 95.0, bill.FinalTotal)

	replay := srv.do(t, http.MethodPost, "/api/v1/bills", token, sampleBill(), "Idempotency-Key", "abc")
	require.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), replay.Body.String())

	w := srv.do(t, http.MethodPost, "/api/v1/bills", token, sampleBill(), "Idempotency-Key", "def")
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &bill)
	assert.Equal(t, int64(2), bill.BillNumber)

	w = srv.do(t, http.MethodGet, "/api/v1/bills", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []billBody `json:"items"`
	}
	decode(t, w, &page)
	assert.Len(t, page.Items, 2)
}

// gatedBills holds every bill save until release is closed.
type gatedBills struct {
	repository.BillRepository
	entered chan struct{}
	release chan struct{}
}

func (g *gatedBills) CreateWithNextNumber(ctx context.Context, bill *entity.Bill) error {
	g.entered <- struct{}{}
	<-g.release
	return g.BillRepository.CreateWithNextNumber(ctx, bill)
}

func TestBillCreateInFlightKeyIsNotRunTwice(t *testing.T) {
	gate := &gatedBills{entered: make(chan struct{}, 2), release: make(chan struct{})}
	srv := newTestServerWithBills(t, nil, func(r repository.BillRepository) repository.BillRepository {
		gate.BillRepository = r
		return gate
	})
	token := srv.token(t, ownerEmail, "master")

	firstDone := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		firstDone <- srv.do(t, http.MethodPost, "/api/v1/bills", token, sampleBill(), "Idempotency-Key", "double-click")
	}()
	<-gate.entered

	second := srv.do(t, http.MethodPost, "/api/v1/bills", token, sampleBill(), "Idempotency-Key", "double-click")
	assert.Equal(t, http.StatusConflict, second.Code, second.Body.String())

	close(gate.release)
	first := <-firstDone
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	third := srv.do(t, http.MethodPost, "/api/v1/bills", token, sampleBill(), "Idempotency-Key", "double-click")
	require.Equal(t, http.StatusCreated, third.Code)
	assert.Equal(t, "true", third.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), third.Body.String())

	assert.Len(t, gate.entered, 0)
	w := srv.do(t, http.MethodGet, "/api/v1/bills", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []billBody `json:"items"`
	}
	decode(t, w, &page)
	assert.Len(t, page.Items, 1)
}

func TestBillRejectsInvalidCartWithoutReplay(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.token(t, ownerEmail, "master")

	empty := sampleBill()
	empty["items"] = []map[string]any{}
	w := srv.do(t, http.MethodPost, "/api/v1/bills", token, empty, "Idempotency-Key", "k1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/bills", token, sampleBill(), "Idempotency-Key", "k1")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
}

func TestBillDocumentsAndPublicRoutes(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.token(t, ownerEmail, "master")

	w := srv.do(t, http.MethodPost, "/api/v1/bills/preview", token, sampleBill())
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/bills", token, sampleBill())
	require.Equal(t, http.StatusCreated, w.Code)
	var bill billBody
	decode(t, w, &bill)

	w = srv.do(t, http.MethodGet, "/api/v1/bills/"+bill.ID+"/invoice", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "1_Asha_Rao_050320241200.pdf")

	w = srv.do(t, http.MethodGet, "/api/v1/bills/"+bill.ID+"/share", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var link struct {
		URL string `json:"url"`
	}
	decode(t, w, &link)
	assert.Contains(t, link.URL, "https://wa.me/919876543210")

	w = srv.do(t, http.MethodPost, "/api/v1/bills/"+bill.ID+"/print", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var printed struct {
		Printed bool `json:"printed"`
	}
	decode(t, w, &printed)
	assert.False(t, printed.Printed)

	w = srv.do(t, http.MethodGet, "/api/v1/public/bills/"+bill.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = srv.do(t, http.MethodGet, "/api/v1/public/bills/"+bill.ID+"/invoice", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = srv.do(t, http.MethodGet, "/api/v1/public/bills/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/customers/9876543210/bills", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReportRoutes(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.token(t, ownerEmail, "master")
	require.Equal(t, http.StatusCreated, srv.do(t, http.MethodPost, "/api/v1/bills", token, sampleBill()).Code)

	w := srv.do(t, http.MethodGet, "/api/v1/reports/sales?granularity=monthly&from=2024-03-01&to=2024-03-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report struct {
		BillCount int `json:"bill_count"`
	}
	decode(t, w, &report)
	assert.Equal(t, 1, report.BillCount)

	w = srv.do(t, http.MethodGet, "/api/v1/reports/sales?granularity=hourly", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/reports/sales/export?from=2024-03-01&to=2024-03-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, spreadsheet.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
}

func TestAccessManagement(t *testing.T) {
	srv := newTestServer(t, nil)
	owner := srv.token(t, ownerEmail, "master")

	w := srv.do(t, http.MethodPost, "/api/v1/access/users", owner, map[string]any{"email": "cashier at shop"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/access/users", owner, map[string]any{"email": "Cashier@Shop.test"})
	require.Equal(t, http.StatusCreated, w.Code)

	cashier := srv.token(t, "cashier@shop.test", "staff")
	w = srv.do(t, http.MethodGet, "/api/v1/settings/company", cashier, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = srv.do(t, http.MethodGet, "/api/v1/access/users", cashier, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodDelete, "/api/v1/access/users/"+ownerEmail, owner, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodDelete, "/api/v1/access/users/cashier@shop.test", owner, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/settings/company", cashier, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSettingsAndPrinterRoutes(t *testing.T) {
	srv := newTestServer(t, nil)
	token := srv.token(t, ownerEmail, "master")

	w := srv.do(t, http.MethodPut, "/api/v1/settings/company", token, map[string]any{"brand_name": "Fresh Mart"})
	require.Equal(t, http.StatusOK, w.Code)
	w = srv.do(t, http.MethodPut, "/api/v1/settings/company", token, map[string]any{"brand_name": "Fresh Mart", "email": "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/printer/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = srv.do(t, http.MethodPost, "/api/v1/printer/test", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitPerAccount(t *testing.T) {
	limiter := middleware.NewIdentityRateLimiter(middleware.RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	defer limiter.Stop()
	srv := newTestServer(t, limiter)
	owner := srv.token(t, ownerEmail, "master")

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/api/v1/profile", owner, nil).Code)
	}
	w := srv.do(t, http.MethodGet, "/api/v1/profile", owner, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}
