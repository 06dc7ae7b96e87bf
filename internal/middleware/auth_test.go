package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kataras/iris/v12"

	"github.com/cimyrichardson/art-store/internal/auth"
	"github.com/cimyrichardson/art-store/internal/config"
	"github.com/cimyrichardson/art-store/internal/datamodels/user"
)

var jwtCfg = &config.JWTConfig{Secret: "test-secret", TTLHours: 1}

// newApp 挂一条受保护路由和一条管理端路由，cache 不启用。
func newApp(t *testing.T) *iris.Application {
	t.Helper()
	app := iris.New()
	app.Get("/me", RequireAuth(jwtCfg, nil), func(ctx iris.Context) {
		ctx.JSON(iris.Map{"user_id": UserID(ctx)})
	})
	app.Get("/admin", RequireAuth(jwtCfg, nil), RequireAdmin(), func(ctx iris.Context) {
		ctx.JSON(iris.Map{"success": true})
	})
	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}
	return app
}

func doGet(app *iris.Application, path string, decorate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if decorate != nil {
		decorate(req)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	app := newApp(t)
	token, err := auth.GenerateToken(jwtCfg, 42, "marie_d", user.RoleCustomer)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	// 缺凭证
	if w := doGet(app, "/me", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}

	// 凭证无效
	w := doGet(app, "/me", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer not-a-jwt")
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", w.Code)
	}

	// Authorization 头，带 Bearer 前缀
	w = doGet(app, "/me", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	if w.Code != http.StatusOK {
		t.Errorf("bearer token: status = %d, want 200, body %s", w.Code, w.Body)
	}

	// 裸 token 头
	w = doGet(app, "/me", func(r *http.Request) {
		r.Header.Set("Authorization", token)
	})
	if w.Code != http.StatusOK {
		t.Errorf("raw header token: status = %d, want 200", w.Code)
	}

	// cookie 兜底
	w = doGet(app, "/me", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "token", Value: token})
	})
	if w.Code != http.StatusOK {
		t.Errorf("cookie token: status = %d, want 200", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	app := newApp(t)

	customer, err := auth.GenerateToken(jwtCfg, 42, "marie_d", user.RoleCustomer)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	admin, err := auth.GenerateToken(jwtCfg, 1, "admin", user.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := doGet(app, "/admin", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+customer)
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("customer on admin route: status = %d, want 403", w.Code)
	}

	w = doGet(app, "/admin", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+admin)
	})
	if w.Code != http.StatusOK {
		t.Errorf("admin on admin route: status = %d, want 200", w.Code)
	}
}
