package middleware

import (
	"strings"

	"github.com/kataras/iris/v12"

	"github.com/cimyrichardson/art-store/internal/auth"
	"github.com/cimyrichardson/art-store/internal/config"
	"github.com/cimyrichardson/art-store/internal/datamodels/user"
	"github.com/cimyrichardson/art-store/internal/service"
)

// ctx.Values() 里携带的登录态键
const (
	KeyUserID   = "user_id"
	KeyUsername = "username"
	KeyRole     = "role"
)

// extractToken 依次从 Authorization 头（可带 Bearer 前缀）和 token cookie 取凭证。
func extractToken(ctx iris.Context) string {
	token := ctx.GetHeader("Authorization")
	if token != "" {
		return strings.TrimPrefix(token, "Bearer ")
	}
	return ctx.GetCookie("token")
}

// RequireAuth 解析并校验登录凭证，解析结果写入 ctx.Values。
// cache 可为 nil（不启用 Redis 缓存时直接验签）。
func RequireAuth(cfg *config.JWTConfig, cache *auth.TokenCache) iris.Handler {
	return func(ctx iris.Context) {
		token := extractToken(ctx)
		if token == "" {
			service.GetMonitor().RecordAuthFailure()
			ctx.StopWithJSON(401, iris.Map{"success": false, "message": "未登录或凭证缺失"})
			return
		}

		var claims *auth.Claims
		if cache != nil {
			// 缓存失败不阻断请求，降级为本地验签；
			// 命中的 claims 没有走验签，过期的一律丢弃
			if cached, ok, err := cache.Get(ctx.Request().Context(), token); err == nil && ok && !cached.Expired() {
				claims = cached
			}
		}
		if claims == nil {
			parsed, err := auth.ParseToken(cfg, token)
			if err != nil {
				service.GetMonitor().RecordAuthFailure()
				ctx.StopWithJSON(401, iris.Map{"success": false, "message": "凭证无效或已过期"})
				return
			}
			claims = parsed
			if cache != nil {
				_ = cache.Set(ctx.Request().Context(), token, claims)
			}
		}

		ctx.Values().Set(KeyUserID, claims.UserID)
		ctx.Values().Set(KeyUsername, claims.Username)
		ctx.Values().Set(KeyRole, claims.Role)
		ctx.Next()
	}
}

// RequireAdmin 在 RequireAuth 之后使用，非 admin 一律 403。
func RequireAdmin() iris.Handler {
	return func(ctx iris.Context) {
		if ctx.Values().GetString(KeyRole) != user.RoleAdmin {
			ctx.StopWithJSON(403, iris.Map{"success": false, "message": "权限不足"})
			return
		}
		ctx.Next()
	}
}

// UserID 从请求上下文取当前登录用户 ID。
func UserID(ctx iris.Context) int64 {
	return ctx.Values().GetInt64Default(KeyUserID, 0)
}
