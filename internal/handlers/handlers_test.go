package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"canteen/internal/models"
	"canteen/internal/ordering"
	"canteen/internal/store"
	"canteen/internal/store/mock"
	"canteen/internal/store/storetest"
	"canteen/internal/wallet"
	"canteen/internal/ws"
)

const testSecret = "handler-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	decimal.MarshalJSONWithoutQuotes = true
	binding.EnableDecoderDisallowUnknownFields = true
	os.Exit(m.Run())
}

type testEnv struct {
	router  *gin.Engine
	mem     *storetest.Memory
	canteen models.Canteen
	itemA   models.MenuItem
	itemB   models.MenuItem
	student models.User
	other   models.User
	staff   models.User
	admin   models.User
}

func newTestEnv(t *testing.T, orders store.Orders) *testEnv {
	t.Helper()
	mem := storetest.New()
	env := &testEnv{mem: mem}
	env.canteen = mem.AddCanteen(models.Canteen{
		Name:         "Library Cafe",
		IsActive:     true,
		ServiceTypes: models.ServiceTypes{DineIn: true, Takeaway: true},
	})
	env.itemA = mem.AddMenuItem(models.MenuItem{CanteenID: env.canteen.ID, Name: "Masala Dosa", Price: decimal.NewFromInt(120), IsAvailable: true, Category: "breakfast"})
	env.itemB = mem.AddMenuItem(models.MenuItem{CanteenID: env.canteen.ID, Name: "Filter Coffee", Price: decimal.NewFromInt(80), IsAvailable: true, Category: "beverages"})
	env.student = mem.AddUser(models.User{Name: "Ravi", Role: models.RoleStudent, IsActive: true})
	env.other = mem.AddUser(models.User{Name: "Meera", Role: models.RoleStudent, IsActive: true})
	env.staff = mem.AddUser(models.User{Name: "Counter", Role: models.RoleStaff, IsActive: true})
	env.admin = mem.AddUser(models.User{Name: "Admin", Role: models.RoleAdmin, IsActive: true})

	if orders == nil {
		orders = mem
	}
	ledger := wallet.NewLedger(mem)
	svc := ordering.NewService(mem, mem, orders, ledger, nil, ordering.Config{
		TaxPercent:    ordering.DefaultTaxPercent,
		EstimatedTime: ordering.DefaultEstimatedTime,
	})

	env.router = gin.New()
	RegisterRoutes(env.router, Dependencies{
		Orders:    svc,
		Ledger:    ledger,
		Catalog:   mem,
		DB:        mem,
		Hub:       ws.NewHub(),
		JWTSecret: testSecret,
	})
	return env
}

func tokenFor(t *testing.T, u models.User) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": u.ID.Hex(),
		"role":   u.Role,
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w.Code, out
}

func (e *testEnv) orderBody(method string) gin.H {
	return gin.H{
		"canteenId": e.canteen.ID.Hex(),
		"items": []gin.H{
			{"menuItem": e.itemA.ID.Hex(), "quantity": 2},
			{"menuItem": e.itemB.ID.Hex(), "quantity": 1, "specialInstructions": "no sugar"},
		},
		"orderMode":     "takeaway",
		"paymentMethod": method,
	}
}

func (e *testEnv) placeOrder(t *testing.T, method string) map[string]any {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/orders", tokenFor(t, e.student), e.orderBody(method))
	if status != http.StatusCreated {
		t.Fatalf("place order: status %d body %v", status, body)
	}
	return body["order"].(map[string]any)
}

func TestCreateOrderAndFetch(t *testing.T) {
	env := newTestEnv(t, nil)

	order := env.placeOrder(t, "cash")
	if order["finalAmount"].(float64) != 336 {
		t.Fatalf("finalAmount = %v, want 336", order["finalAmount"])
	}
	if order["tax"].(float64) != 16 {
		t.Fatalf("tax = %v, want 16", order["tax"])
	}
	if order["status"] != "pending" || order["paymentStatus"] != "pending" {
		t.Fatalf("unexpected statuses: %v / %v", order["status"], order["paymentStatus"])
	}

	path := "/orders/" + order["id"].(string)
	if status, _ := env.do(t, http.MethodGet, path, tokenFor(t, env.student), nil); status != http.StatusOK {
		t.Fatalf("owner fetch: status %d", status)
	}
	if status, _ := env.do(t, http.MethodGet, path, tokenFor(t, env.staff), nil); status != http.StatusOK {
		t.Fatalf("staff fetch: status %d", status)
	}
	status, body := env.do(t, http.MethodGet, path, tokenFor(t, env.other), nil)
	if status != http.StatusForbidden || body["success"] != false {
		t.Fatalf("foreign fetch: status %d body %v", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/orders/user", tokenFor(t, env.student), nil)
	if status != http.StatusOK || body["count"].(float64) != 1 {
		t.Fatalf("list orders: status %d body %v", status, body)
	}
}

func TestCreateOrderRejections(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenFor(t, env.student)

	malformed := env.orderBody("cash")
	malformed["items"] = []gin.H{{"menuItem": "not-an-id", "quantity": 1}}

	unknown := env.orderBody("cash")
	unknown["items"] = []gin.H{{"menuItem": primitive.NewObjectID().Hex(), "quantity": 1}}

	empty := env.orderBody("cash")
	empty["items"] = []gin.H{}

	badMode := env.orderBody("cash")
	badMode["orderMode"] = "delivery"

	tests := []struct {
		name       string
		token      string
		body       any
		wantStatus int
		wantError  string
	}{
		{name: "no token", token: "", body: env.orderBody("cash"), wantStatus: http.StatusUnauthorized},
		{name: "malformed item id", token: token, body: malformed, wantStatus: http.StatusBadRequest, wantError: "Invalid menu item ID"},
		{name: "unknown item", token: token, body: unknown, wantStatus: http.StatusNotFound, wantError: "Menu item not found"},
		{name: "empty cart", token: token, body: empty, wantStatus: http.StatusBadRequest},
		{name: "mode not offered", token: token, body: badMode, wantStatus: http.StatusBadRequest, wantError: "does not offer"},
		{name: "unknown field", token: token, body: `{"canteenId":"x","bogus":1}`, wantStatus: http.StatusBadRequest},
		{name: "missing canteen", token: token, body: gin.H{"items": []gin.H{}, "orderMode": "takeaway", "paymentMethod": "cash"}, wantStatus: http.StatusBadRequest, wantError: "canteenId is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := env.do(t, http.MethodPost, "/orders", tc.token, tc.body)
			if status != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %v)", status, tc.wantStatus, body)
			}
			if body["success"] != false {
				t.Fatalf("expected success=false, got %v", body)
			}
			if tc.wantError != "" && !strings.Contains(body["error"].(string), tc.wantError) {
				t.Fatalf("error %q does not mention %q", body["error"], tc.wantError)
			}
		})
	}

	status, body := env.do(t, http.MethodGet, "/orders/user", token, nil)
	if status != http.StatusOK || body["count"].(float64) != 0 {
		t.Fatalf("rejected requests must not persist orders, got %v", body)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	env := newTestEnv(t, nil)
	order := env.placeOrder(t, "cash")
	path := "/orders/" + order["id"].(string) + "/status"

	if status, _ := env.do(t, http.MethodPut, path, tokenFor(t, env.student), gin.H{"status": "confirmed"}); status != http.StatusForbidden {
		t.Fatalf("student transition: status %d, want 403", status)
	}

	status, body := env.do(t, http.MethodPut, path, tokenFor(t, env.staff), gin.H{"status": "completed"})
	if status != http.StatusConflict {
		t.Fatalf("pending -> completed: status %d body %v", status, body)
	}

	for _, next := range []string{"confirmed", "preparing", "ready", "completed"} {
		status, body := env.do(t, http.MethodPut, path, tokenFor(t, env.staff), gin.H{"status": next})
		if status != http.StatusOK {
			t.Fatalf("-> %s: status %d body %v", next, status, body)
		}
	}

	if status, _ := env.do(t, http.MethodPut, path, tokenFor(t, env.admin), gin.H{"status": "cancelled"}); status != http.StatusConflict {
		t.Fatalf("completed -> cancelled: status %d, want 409", status)
	}
	if status, _ := env.do(t, http.MethodPut, path, tokenFor(t, env.staff), gin.H{"status": "teleported"}); status != http.StatusBadRequest {
		t.Fatalf("unknown status: status %d, want 400", status)
	}
}

func TestFeedbackIsSetOnce(t *testing.T) {
	env := newTestEnv(t, nil)
	order := env.placeOrder(t, "cash")
	path := "/orders/" + order["id"].(string) + "/feedback"
	token := tokenFor(t, env.student)

	if status, _ := env.do(t, http.MethodPost, path, token, gin.H{"rating": 6}); status != http.StatusBadRequest {
		t.Fatalf("rating 6: status %d, want 400", status)
	}
	if status, _ := env.do(t, http.MethodPost, path, tokenFor(t, env.other), gin.H{"rating": 4}); status != http.StatusForbidden {
		t.Fatalf("foreign feedback: status %d, want 403", status)
	}

	status, body := env.do(t, http.MethodPost, path, token, gin.H{"rating": 5, "comment": "crispy"})
	if status != http.StatusOK {
		t.Fatalf("first feedback: status %d body %v", status, body)
	}

	status, body = env.do(t, http.MethodPost, path, token, gin.H{"rating": 1})
	if status != http.StatusConflict || body["error"] != "Feedback already submitted for this order" {
		t.Fatalf("second feedback: status %d body %v", status, body)
	}
}

func TestWalletEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenFor(t, env.student)

	status, body := env.do(t, http.MethodPost, "/wallet/add-money", token, gin.H{"amount": 500, "paymentMethod": "upi"})
	if status != http.StatusOK {
		t.Fatalf("add-money: status %d body %v", status, body)
	}
	if got := body["wallet"].(map[string]any)["balance"].(float64); got != 500 {
		t.Fatalf("balance after credit = %v, want 500", got)
	}

	status, body = env.do(t, http.MethodPost, "/wallet/pay", token, gin.H{"amount": 300, "description": "Lunch"})
	if status != http.StatusOK || body["wallet"].(map[string]any)["balance"].(float64) != 200 {
		t.Fatalf("pay 300: status %d body %v", status, body)
	}

	status, body = env.do(t, http.MethodPost, "/wallet/pay", token, gin.H{"amount": 250})
	if status != http.StatusBadRequest {
		t.Fatalf("pay 250: status %d body %v", status, body)
	}
	if body["error"] != "Insufficient balance: you have 200.00" {
		t.Fatalf("unexpected insufficient balance message: %v", body["error"])
	}

	status, body = env.do(t, http.MethodGet, "/wallet/transactions?limit=1", token, nil)
	if status != http.StatusOK {
		t.Fatalf("transactions: status %d body %v", status, body)
	}
	if body["totalTransactions"].(float64) != 2 {
		t.Fatalf("totalTransactions = %v, want 2", body["totalTransactions"])
	}
	txs := body["transactions"].([]any)
	if len(txs) != 1 || txs[0].(map[string]any)["type"] != "debit" {
		t.Fatalf("most recent transaction should be the debit, got %v", txs)
	}

	status, body = env.do(t, http.MethodGet, "/wallet/balance", token, nil)
	if status != http.StatusOK {
		t.Fatalf("balance: status %d", status)
	}
	w := body["wallet"].(map[string]any)
	if w["totalAdded"].(float64)-w["totalSpent"].(float64) != w["balance"].(float64) {
		t.Fatalf("balance does not equal totalAdded - totalSpent: %v", w)
	}
	if recent := w["recentTransactions"].([]any); len(recent) != 2 {
		t.Fatalf("recentTransactions = %d entries, want 2", len(recent))
	}

	status, body = env.do(t, http.MethodGet, "/wallet/check", token, nil)
	if status != http.StatusOK || body["balance"].(float64) != 200 || body["isActive"] != true {
		t.Fatalf("check: status %d body %v", status, body)
	}
}

func TestWalletRejectsBadAmounts(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenFor(t, env.student)

	tests := []struct {
		name string
		path string
		body any
		want string
	}{
		{name: "zero credit", path: "/wallet/add-money", body: gin.H{"amount": 0}, want: "Invalid amount"},
		{name: "missing credit", path: "/wallet/add-money", body: gin.H{}, want: "Invalid amount"},
		{name: "negative credit", path: "/wallet/add-money", body: gin.H{"amount": -5}, want: "Invalid amount"},
		{name: "over limit", path: "/wallet/add-money", body: gin.H{"amount": 100001}, want: "Maximum limit is 100000"},
		{name: "zero debit", path: "/wallet/pay", body: gin.H{"amount": 0}, want: "Invalid amount"},
		{name: "bad order id", path: "/wallet/pay", body: gin.H{"amount": 1, "orderId": "xyz"}, want: "Invalid order ID"},
		{name: "credit beyond storable precision", path: "/wallet/add-money", body: `{"amount": 10.00000000000000000000000000000000000001}`, want: "decimal places"},
		{name: "sub-paisa debit", path: "/wallet/pay", body: `{"amount": 0.001}`, want: "decimal places"},
		{name: "oversized debit", path: "/wallet/pay", body: `{"amount": 1e40}`, want: "must not exceed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := env.do(t, http.MethodPost, tc.path, token, tc.body)
			if status != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %v)", status, body)
			}
			if !strings.Contains(body["error"].(string), tc.want) {
				t.Fatalf("error %q does not mention %q", body["error"], tc.want)
			}
		})
	}

	if status, _ := env.do(t, http.MethodGet, "/wallet/transactions?limit=500", token, nil); status != http.StatusBadRequest {
		t.Fatalf("oversized page: status %d, want 400", status)
	}
	if status, _ := env.do(t, http.MethodGet, "/wallet/transactions?skip=abc", token, nil); status != http.StatusBadRequest {
		t.Fatalf("non-numeric skip: status %d, want 400", status)
	}
}

func TestWalletOrderCancelRefunds(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenFor(t, env.student)

	if status, _ := env.do(t, http.MethodPost, "/wallet/add-money", token, gin.H{"amount": 500}); status != http.StatusOK {
		t.Fatalf("add-money failed: %d", status)
	}
	order := env.placeOrder(t, "wallet")
	if order["paymentStatus"] != "completed" {
		t.Fatalf("paymentStatus = %v, want completed", order["paymentStatus"])
	}

	path := "/orders/" + order["id"].(string) + "/status"
	status, body := env.do(t, http.MethodPut, path, tokenFor(t, env.staff), gin.H{"status": "cancelled"})
	if status != http.StatusOK {
		t.Fatalf("cancel: status %d body %v", status, body)
	}
	if body["order"].(map[string]any)["paymentStatus"] != "refunded" {
		t.Fatalf("paymentStatus after cancel = %v", body["order"].(map[string]any)["paymentStatus"])
	}

	_, body = env.do(t, http.MethodGet, "/wallet/check", token, nil)
	if body["balance"].(float64) != 500 {
		t.Fatalf("balance after refund = %v, want 500", body["balance"])
	}
}

func TestWalletOrderInsufficientBalance(t *testing.T) {
	env := newTestEnv(t, nil)
	token := tokenFor(t, env.student)

	status, body := env.do(t, http.MethodPost, "/orders", token, env.orderBody("wallet"))
	if status != http.StatusBadRequest {
		t.Fatalf("status %d body %v", status, body)
	}
	if !strings.HasPrefix(body["error"].(string), "Insufficient balance") {
		t.Fatalf("unexpected error %v", body["error"])
	}
	orderID, ok := body["orderId"].(string)
	if !ok {
		t.Fatalf("response should carry the failed order id, got %v", body)
	}

	_, body = env.do(t, http.MethodGet, "/orders/"+orderID, token, nil)
	if body["order"].(map[string]any)["paymentStatus"] != "failed" {
		t.Fatalf("paymentStatus = %v, want failed", body["order"].(map[string]any)["paymentStatus"])
	}
}

func TestRefundEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	order := env.placeOrder(t, "cash")
	orderID := order["id"].(string)

	req := gin.H{"amount": 100, "reason": "cold food", "orderId": orderID}
	if status, _ := env.do(t, http.MethodPost, "/wallet/refund", tokenFor(t, env.student), req); status != http.StatusForbidden {
		t.Fatalf("student refund: status %d, want 403", status)
	}

	tooMuch := gin.H{"amount": 400, "reason": "cold food", "orderId": orderID}
	if status, _ := env.do(t, http.MethodPost, "/wallet/refund", tokenFor(t, env.staff), tooMuch); status != http.StatusBadRequest {
		t.Fatalf("refund above order total: status %d, want 400", status)
	}

	status, body := env.do(t, http.MethodPost, "/wallet/refund", tokenFor(t, env.staff), req)
	if status != http.StatusOK {
		t.Fatalf("refund: status %d body %v", status, body)
	}

	_, body = env.do(t, http.MethodGet, "/wallet/transactions", tokenFor(t, env.student), nil)
	txs := body["transactions"].([]any)
	if len(txs) != 1 {
		t.Fatalf("owner should have one refund transaction, got %v", txs)
	}
	tx := txs[0].(map[string]any)
	if tx["description"] != "Refund: cold food" || tx["orderId"] != orderID {
		t.Fatalf("unexpected refund transaction %v", tx)
	}
	if !strings.HasPrefix(tx["transactionId"].(string), "REFUND-") {
		t.Fatalf("refund id %v lacks REFUND prefix", tx["transactionId"])
	}
}

func TestRefundsAreCappedAcrossCalls(t *testing.T) {
	env := newTestEnv(t, nil)
	order := env.placeOrder(t, "cash")
	orderID := order["id"].(string)
	staff := tokenFor(t, env.staff)

	first := gin.H{"amount": 200, "reason": "cold food", "orderId": orderID}
	if status, body := env.do(t, http.MethodPost, "/wallet/refund", staff, first); status != http.StatusOK {
		t.Fatalf("first refund: status %d body %v", status, body)
	}

	status, body := env.do(t, http.MethodPost, "/wallet/refund", staff, first)
	if status != http.StatusBadRequest {
		t.Fatalf("second refund past total: status %d body %v", status, body)
	}
	if !strings.Contains(body["error"].(string), "136.00") {
		t.Fatalf("error should name the refundable balance, got %v", body["error"])
	}

	rest := gin.H{"amount": 136, "reason": "cold food", "orderId": orderID}
	if status, body := env.do(t, http.MethodPost, "/wallet/refund", staff, rest); status != http.StatusOK {
		t.Fatalf("refund of the remainder: status %d body %v", status, body)
	}

	_, body = env.do(t, http.MethodGet, "/wallet/check", tokenFor(t, env.student), nil)
	if body["balance"].(float64) != 336 {
		t.Fatalf("refunded total = %v, want 336", body["balance"])
	}
}

func TestStorageFailureIsGeneric(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mock.NewMockOrders(ctrl)
	orders.EXPECT().
		InsertOrder(gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset by peer 10.0.0.7:27017"))

	env := newTestEnv(t, orders)
	status, body := env.do(t, http.MethodPost, "/orders", tokenFor(t, env.student), env.orderBody("cash"))
	if status != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", status)
	}
	if strings.Contains(body["error"].(string), "10.0.0.7") {
		t.Fatalf("storage detail leaked to client: %v", body["error"])
	}
	if body["retryable"] != true {
		t.Fatalf("storage failures should be marked retryable, got %v", body)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)

	status, body := env.do(t, http.MethodGet, "/canteens", "", nil)
	if status != http.StatusOK || body["count"].(float64) != 1 {
		t.Fatalf("canteens: status %d body %v", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/canteens/"+env.canteen.ID.Hex()+"/menu?category=beverages", "", nil)
	if status != http.StatusOK || body["count"].(float64) != 1 {
		t.Fatalf("menu: status %d body %v", status, body)
	}

	if status, _ := env.do(t, http.MethodGet, "/menu/nope", "", nil); status != http.StatusBadRequest {
		t.Fatalf("malformed menu id: status %d, want 400", status)
	}
	if status, _ := env.do(t, http.MethodGet, "/menu/"+primitive.NewObjectID().Hex(), "", nil); status != http.StatusNotFound {
		t.Fatalf("unknown menu id: status %d, want 404", status)
	}
	if status, _ := env.do(t, http.MethodGet, "/canteens/"+primitive.NewObjectID().Hex(), "", nil); status != http.StatusNotFound {
		t.Fatalf("unknown canteen: status %d, want 404", status)
	}
}

func TestAdminPriceChangeKeepsPlacedOrders(t *testing.T) {
	env := newTestEnv(t, nil)
	order := env.placeOrder(t, "cash")

	path := "/admin/api/menu/" + env.itemA.ID.Hex()
	if status, _ := env.do(t, http.MethodPut, path, tokenFor(t, env.staff), gin.H{"price": 150}); status != http.StatusForbidden {
		t.Fatalf("staff price change: status %d, want 403", status)
	}
	status, body := env.do(t, http.MethodPut, path, tokenFor(t, env.admin), gin.H{"price": 150})
	if status != http.StatusOK {
		t.Fatalf("admin price change: status %d body %v", status, body)
	}
	if status, _ := env.do(t, http.MethodPut, path, tokenFor(t, env.admin), gin.H{}); status != http.StatusBadRequest {
		t.Fatalf("empty update: status %d, want 400", status)
	}
	if status, _ := env.do(t, http.MethodPut, path, tokenFor(t, env.admin), `{"price": 99.999}`); status != http.StatusBadRequest {
		t.Fatalf("sub-paisa price: status %d, want 400", status)
	}

	_, body = env.do(t, http.MethodGet, "/orders/"+order["id"].(string), tokenFor(t, env.student), nil)
	items := body["order"].(map[string]any)["items"].([]any)
	if price := items[0].(map[string]any)["price"].(float64); price != 120 {
		t.Fatalf("captured price changed to %v", price)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	if status, _ := env.do(t, http.MethodGet, "/healthz", "", nil); status != http.StatusOK {
		t.Fatalf("healthy store: status %d", status)
	}

	env.mem.PingErr = errors.New("no primary")
	if status, _ := env.do(t, http.MethodGet, "/healthz", "", nil); status != http.StatusServiceUnavailable {
		t.Fatalf("failing store: status %d, want 503", status)
	}
}
