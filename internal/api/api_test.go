package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/service"
	"github.com/shopfoundry/go-catalog-backend/internal/storage/memory"
	"github.com/shopfoundry/go-catalog-backend/pkg/config"
)

type testServer struct {
	router   *gin.Engine
	store    *memory.Store
	services *service.Services
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:        "test-secret",
			ExpiryMinutes: 60,
			Issuer:        "catalog-backend",
		},
	}
	logger := zap.NewNop()
	store := memory.NewStore()
	services := service.NewServices(store, cfg, logger)

	router := gin.New()
	SetupRoutes(router, NewHandlers(services, cfg, logger), services, logger)

	return &testServer{router: router, store: store, services: services}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}

// registerAndLogin registers a user with the given role and returns the
// login token and public user.
func (ts *testServer) registerAndLogin(t *testing.T, username, role string) (string, domain.PublicUser) {
	t.Helper()

	email := username + "@example.com"
	w := ts.do(t, http.MethodPost, "/user/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body = %s", username, w.Code, w.Body.String())
	}

	w = ts.do(t, http.MethodPost, "/user/login", "", gin.H{
		"email":    email,
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status = %d, body = %s", username, w.Code, w.Body.String())
	}

	resp := decode[domain.LoginResponse](t, w)
	if resp.Token == "" {
		t.Fatalf("login %s: empty token", username)
	}
	return resp.Token, resp.User
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/", "/health"} {
		w := ts.do(t, http.MethodGet, path, "", nil)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, w.Code)
		}
	}
}

func TestRegisterLoginMe(t *testing.T) {
	ts := newTestServer(t)
	token, user := ts.registerAndLogin(t, "alice", "user")

	w := ts.do(t, http.MethodGet, "/user", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /user status = %d, body = %s", w.Code, w.Body.String())
	}

	me := decode[domain.PublicUser](t, w)
	if me.ID != user.ID || me.Username != "alice" || me.Role != "user" {
		t.Errorf("GET /user = %+v, want alice", me)
	}
}

func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/user/register", "", gin.H{"username": "alice"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	resp := decode[struct {
		Message string              `json:"message"`
		Errors  []domain.FieldError `json:"errors"`
	}](t, w)
	if resp.Message != "Bad request" || len(resp.Errors) == 0 {
		t.Errorf("body = %+v, want field errors", resp)
	}
}

func TestRegister_UnknownRole(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/user/register", "", gin.H{
		"username": "mallory",
		"email":    "mallory@example.com",
		"password": "secret123",
		"role":     "superuser",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin(t, "alice", "user")

	w := ts.do(t, http.MethodPost, "/user/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	body := decode[map[string]string](t, w)
	if body["error"] != "Incorrect email or password" {
		t.Errorf("error = %q, want the generic credentials message", body["error"])
	}
}

func TestProtectedRoutes_NoToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/user", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("GET /user without token status = %d, want 401", w.Code)
	}

	w = ts.do(t, http.MethodPost, "/category", "", gin.H{"name": "Tools"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("POST /category without token status = %d, want 401", w.Code)
	}
}

func TestProtectedRoutes_RawToken(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.registerAndLogin(t, "alice", "user")

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", token) // no Bearer prefix
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("raw token status = %d, want 200", w.Code)
	}
}

func TestAdminGate(t *testing.T) {
	ts := newTestServer(t)
	userToken, _ := ts.registerAndLogin(t, "alice", "user")
	adminToken, _ := ts.registerAndLogin(t, "bob", "admin")

	w := ts.do(t, http.MethodGet, "/user/admin", userToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("GET /user/admin as user status = %d, want 403", w.Code)
	}

	w = ts.do(t, http.MethodGet, "/user/admin", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("GET /user/admin as admin status = %d, want 200", w.Code)
	}

	w = ts.do(t, http.MethodGet, "/user/all", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("GET /user/all as admin status = %d, want 200", w.Code)
	}
}

func TestAdminGate_LiveRole(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.registerAndLogin(t, "bob", "admin")

	w := ts.do(t, http.MethodGet, "/user/admin", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /user/admin status = %d, want 200", w.Code)
	}

	// Demote bob directly in the store. The old token still carries the
	// admin claim, but the gate re-resolves the role on every request.
	userRole, err := ts.store.Roles().GetByName(context.Background(), domain.RoleUser)
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	stored, err := ts.store.Users().GetByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	stored.RoleID = userRole.ID
	if err := ts.store.Users().Update(context.Background(), stored); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	w = ts.do(t, http.MethodGet, "/user/admin", token, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("GET /user/admin after demotion status = %d, want 403", w.Code)
	}
}

func TestCategoryProductFlow(t *testing.T) {
	ts := newTestServer(t)
	adminToken, _ := ts.registerAndLogin(t, "bob", "admin")

	w := ts.do(t, http.MethodPost, "/category", adminToken, gin.H{
		"name":        "Tools",
		"description": "Hand tools",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /category status = %d, body = %s", w.Code, w.Body.String())
	}
	category := decode[domain.Category](t, w)
	if category.CreatedBy.Username != "bob" || category.CreatedBy.Role != "admin" {
		t.Errorf("CreatedBy = %+v, want bob/admin", category.CreatedBy)
	}

	w = ts.do(t, http.MethodPost, "/product", adminToken, gin.H{
		"name":     "Hammer",
		"price":    9.99,
		"stock":    5,
		"category": category.ID.Hex(),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /product status = %d, body = %s", w.Code, w.Body.String())
	}
	product := decode[domain.ProductView](t, w)
	if product.Category == nil || product.Category.Name != "Tools" {
		t.Errorf("product category = %+v, want Tools", product.Category)
	}

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/category/%s/products", category.ID.Hex()), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /category/:id/products status = %d", w.Code)
	}
	views := decode[[]domain.ProductView](t, w)
	if len(views) != 1 || views[0].Name != "Hammer" {
		t.Errorf("category products = %+v, want the hammer", views)
	}

	w = ts.do(t, http.MethodGet, "/category/name/Tools", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("GET /category/name/Tools status = %d, want 200", w.Code)
	}

	w = ts.do(t, http.MethodGet, "/product?category="+category.ID.Hex(), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /product?category= status = %d", w.Code)
	}
	filtered := decode[[]domain.ProductView](t, w)
	if len(filtered) != 1 {
		t.Errorf("filtered products = %d, want 1", len(filtered))
	}
}

func TestCategory_NonAdminWrite(t *testing.T) {
	ts := newTestServer(t)
	userToken, _ := ts.registerAndLogin(t, "alice", "user")

	w := ts.do(t, http.MethodPost, "/category", userToken, gin.H{"name": "Tools"})
	if w.Code != http.StatusForbidden {
		t.Errorf("POST /category as user status = %d, want 403", w.Code)
	}
}

func TestProduct_UnknownCategory(t *testing.T) {
	ts := newTestServer(t)
	adminToken, _ := ts.registerAndLogin(t, "bob", "admin")

	w := ts.do(t, http.MethodPost, "/product", adminToken, gin.H{
		"name":     "Hammer",
		"price":    9.99,
		"category": "64a000000000000000000000",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("POST /product with unknown category status = %d, want 404", w.Code)
	}
}

func TestInvalidPathIDs(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{
		"/category/not-an-id",
		"/product/not-an-id",
	} {
		w := ts.do(t, http.MethodGet, path, "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, w.Code)
		}
	}

	w := ts.do(t, http.MethodGet, "/product?category=not-an-id", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("GET /product?category=not-an-id status = %d, want 404", w.Code)
	}
}

func TestUpdateUser_Ownership(t *testing.T) {
	ts := newTestServer(t)
	aliceToken, alice := ts.registerAndLogin(t, "alice", "user")
	_, bob := ts.registerAndLogin(t, "bob", "user")

	w := ts.do(t, http.MethodPut, "/user/"+alice.ID, aliceToken, gin.H{"username": "alice2"})
	if w.Code != http.StatusOK {
		t.Fatalf("PUT own user status = %d, body = %s", w.Code, w.Body.String())
	}
	updated := decode[domain.PublicUser](t, w)
	if updated.Username != "alice2" {
		t.Errorf("Username = %q, want alice2", updated.Username)
	}

	w = ts.do(t, http.MethodPut, "/user/"+bob.ID, aliceToken, gin.H{"username": "hacked"})
	if w.Code != http.StatusForbidden {
		t.Errorf("PUT other user status = %d, want 403", w.Code)
	}
}

func TestDeleteUser_AdminOverride(t *testing.T) {
	ts := newTestServer(t)
	_, alice := ts.registerAndLogin(t, "alice", "user")
	adminToken, _ := ts.registerAndLogin(t, "bob", "admin")

	w := ts.do(t, http.MethodDelete, "/user/delete/"+alice.ID, adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE /user/delete/:id status = %d, body = %s", w.Code, w.Body.String())
	}

	w = ts.do(t, http.MethodDelete, "/user/delete/"+alice.ID, adminToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("DELETE again status = %d, want 404", w.Code)
	}
}

func TestDeleteCategory_ProductsOrphaned(t *testing.T) {
	ts := newTestServer(t)
	adminToken, _ := ts.registerAndLogin(t, "bob", "admin")

	w := ts.do(t, http.MethodPost, "/category", adminToken, gin.H{"name": "Tools"})
	category := decode[domain.Category](t, w)

	w = ts.do(t, http.MethodPost, "/product", adminToken, gin.H{
		"name":     "Hammer",
		"price":    9.99,
		"category": category.ID.Hex(),
	})
	product := decode[domain.ProductView](t, w)

	w = ts.do(t, http.MethodDelete, "/category/"+category.ID.Hex(), adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE /category/:id status = %d", w.Code)
	}

	w = ts.do(t, http.MethodGet, "/product/"+product.ID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /product/:id status = %d", w.Code)
	}
	orphan := decode[domain.ProductView](t, w)
	if orphan.Category != nil {
		t.Error("orphaned product should render a null category")
	}
}

func TestRoleCRUD(t *testing.T) {
	ts := newTestServer(t)
	adminToken, _ := ts.registerAndLogin(t, "bob", "admin")

	w := ts.do(t, http.MethodGet, "/role", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /role status = %d", w.Code)
	}
	roles := decode[[]domain.Role](t, w)
	if len(roles) != 2 {
		t.Errorf("seeded roles = %d, want 2", len(roles))
	}

	// Names outside the known set are rejected, matching registration
	w = ts.do(t, http.MethodPost, "/role", adminToken, gin.H{"name": "moderator"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("POST unknown role name status = %d, want 400", w.Code)
	}

	w = ts.do(t, http.MethodPost, "/role", adminToken, gin.H{"name": "user"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("POST duplicate role status = %d, want 400", w.Code)
	}

	// A deleted role can be recreated
	var userRole domain.Role
	for _, role := range roles {
		if role.Name == domain.RoleUser {
			userRole = role
		}
	}
	w = ts.do(t, http.MethodDelete, "/role/"+userRole.ID.Hex(), adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE /role/:id status = %d, want 200", w.Code)
	}

	w = ts.do(t, http.MethodPost, "/role", adminToken, gin.H{"name": "user"})
	if w.Code != http.StatusCreated {
		t.Errorf("POST recreated role status = %d, body = %s", w.Code, w.Body.String())
	}
}
