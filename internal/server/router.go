package server

import (
	"fmt"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/cimyrichardson/art-store/internal/auth"
	"github.com/cimyrichardson/art-store/internal/config"
	"github.com/cimyrichardson/art-store/internal/datamodels/product"
	"github.com/cimyrichardson/art-store/internal/datamodels/user"
	"github.com/cimyrichardson/art-store/internal/errs"
	"github.com/cimyrichardson/art-store/internal/infra/mq"
	"github.com/cimyrichardson/art-store/internal/infra/redis"
	"github.com/cimyrichardson/art-store/internal/middleware"
	"github.com/cimyrichardson/art-store/internal/repository/mysql"
	"github.com/cimyrichardson/art-store/internal/service"
)

// RegisterRoutes 注册所有 HTTP 路由
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)
	mqConn := mq.Init(&cfg.RabbitMQ)

	// 静态资源：挂载前端静态文件（CSS/JS/图片）
	app.HandleDir("/assets", iris.Dir("./web/assets"))
	app.Get("/", func(ctx iris.Context) {
		_ = ctx.ServeFile("./web/index.html")
	})

	// 仓储与服务
	userRepo := mysql.NewUserRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	paymentRepo := mysql.NewPaymentRepository(db)

	userSvc := service.NewUserService(userRepo, &cfg.JWT)
	categorySvc := service.NewCategoryService(categoryRepo)
	productSvc := service.NewProductService(productRepo)
	orderSvc := service.NewOrderService(db, orderRepo, paymentRepo, mqConn)

	// JWT 解析结果缓存（按哈希环分片到 Redis）
	ring := auth.NewRing(cfg.Auth.Nodes, cfg.Auth.HashReplicas)
	tokenCache := auth.NewTokenCache(redisClient, ring,
		time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)

	requireAuth := middleware.RequireAuth(&cfg.JWT, tokenCache)
	requireAdmin := middleware.RequireAdmin()

	api := app.Party("/api")

	// 健康检查
	api.Get("/health", func(ctx iris.Context) {
		_ = ctx.JSON(iris.Map{"success": true, "message": "ok"})
	})

	// ---------- 认证 ----------

	authParty := api.Party("/auth")
	authParty.Use(middleware.AuthRateLimit())

	authParty.Post("/register", func(ctx iris.Context) {
		var req registerRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, fmt.Errorf("%w: %v", errs.ErrValidation, err))
			return
		}
		u, token, err := userSvc.Register(ctx.Request().Context(), req.Username, req.Email, req.Password)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.StatusCode(201)
		_ = ctx.JSON(iris.Map{"success": true, "data": iris.Map{"user": u, "token": token}})
	})

	authParty.Post("/login", func(ctx iris.Context) {
		var req loginRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, fmt.Errorf("%w: %v", errs.ErrValidation, err))
			return
		}
		u, token, err := userSvc.Login(ctx.Request().Context(), req.Email, req.Password)
		if err != nil {
			fail(ctx, err)
			return
		}
		_ = ctx.JSON(iris.Map{"success": true, "data": iris.Map{"user": u, "token": token}})
	})

	authParty.Get("/profile", requireAuth, func(ctx iris.Context) {
		u, err := userSvc.Profile(ctx.Request().Context(), middleware.UserID(ctx))
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, 200, u)
	})

	authParty.Put("/profile", requireAuth, func(ctx iris.Context) {
		var req profileRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, fmt.Errorf("%w: %v", errs.ErrValidation, err))
			return
		}
		u, err := userSvc.UpdateProfile(ctx.Request().Context(), middleware.UserID(ctx), req.Username, req.Email)
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, 200, u)
	})

	authParty.Put("/password", requireAuth, func(ctx iris.Context) {
		var req passwordRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, fmt.Errorf("%w: %v", errs.ErrValidation, err))
			return
		}
		if err := userSvc.ChangePassword(ctx.Request().Context(), middleware.UserID(ctx), req.OldPassword, req.NewPassword); err != nil {
			fail(ctx, err)
			return
		}
		okMessage(ctx, "密码已更新")
	})

	// ---------- 商品目录 ----------

	api.Get("/products", func(ctx iris.Context) {
		q := &product.ListQuery{
			CategoryID: int64(ctx.URLParamIntDefault("category", 0)),
			Search:     ctx.URLParam("search"),
			Sort:       ctx.URLParam("sort"),
			Page:       ctx.URLParamIntDefault("page", 1),
			Limit:      ctx.URLParamIntDefault("limit", 10),
		}
		list, meta, err := productSvc.List(ctx.Request().Context(), q)
		if err != nil {
			fail(ctx, err)
			return
		}
		okPage(ctx, list, meta)
	})

	api.Get("/products/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, 200, p)
	})

	api.Get("/categories", func(ctx iris.Context) {
		list, err := categorySvc.ListAll(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, 200, list)
	})

	// ---------- 商品/分类管理（admin） ----------

	api.Post("/products", requireAuth, requireAdmin, func(ctx iris.Context) {
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, fmt.Errorf("%w: %v", errs.ErrValidation, err))
			return
		}
		p := req.toModel(0)
		if err := productSvc.Create(ctx.Request().Context(), p); err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, 201, p)
	})

	api.Put("/products/{id:int64}", requireAuth, requireAdmin, func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, fmt.Errorf("%w: %v", errs.ErrValidation, err))
			return
		}
		p, err := productSvc.Update(ctx.Request().Context(), req.toModel(id))
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, 200, p)
	})

	api.Delete("/products/{id:int64}", requireAuth, requireAdmin, func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		if err := productSvc.Delete(ctx.Request().Context(), id); err != nil {
			fail(ctx, err)
			return
		}
		okMessage(ctx, "商品已删除")
	})

	api.Post("/categories", requireAuth, requireAdmin, func(ctx iris.Context) {
		var req categoryRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, fmt.Errorf("%w: %v", errs.ErrValidation, err))
			return
		}
		c, err := categorySvc.Create(ctx.Request().Context(), req.Name)
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, 201, c)
	})

	// ---------- 订单 ----------

	orders := api.Party("/orders")
	orders.Use(requireAuth)

	orders.Post("/", middleware.OrderRateLimit(), func(ctx iris.Context) {
		var req placeOrderRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, fmt.Errorf("%w: %v", errs.ErrValidation, err))
			return
		}
		detail, err := orderSvc.PlaceOrder(ctx.Request().Context(), middleware.UserID(ctx),
			req.Items, req.PaymentMethod, req.ShippingAddress)
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, 201, detail)
	})

	orders.Get("/", func(ctx iris.Context) {
		list, err := orderSvc.ListByUser(ctx.Request().Context(), middleware.UserID(ctx))
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, 200, list)
	})

	// 管理端列表要先于 /{id} 注册，避免 admin 被当成订单号
	orders.Get("/admin/all", requireAdmin, func(ctx iris.Context) {
		list, err := orderSvc.ListAll(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, 200, list)
	})

	orders.Get("/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		// 管理员可以查看任意订单，普通用户只能看自己的
		viewer := middleware.UserID(ctx)
		if ctx.Values().GetString(middleware.KeyRole) == user.RoleAdmin {
			viewer = 0
		}
		detail, err := orderSvc.GetDetail(ctx.Request().Context(), id, viewer)
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, 200, detail)
	})

	orders.Post("/{id:int64}/payment", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		if err := orderSvc.SettlePayment(ctx.Request().Context(), id, middleware.UserID(ctx)); err != nil {
			fail(ctx, err)
			return
		}
		okMessage(ctx, "支付已受理")
	})

	orders.Put("/{id:int64}/status", requireAdmin, func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		var req orderStatusRequest
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, fmt.Errorf("%w: %v", errs.ErrValidation, err))
			return
		}
		if err := orderSvc.UpdateStatus(ctx.Request().Context(), id, req.Status); err != nil {
			fail(ctx, err)
			return
		}
		okMessage(ctx, "状态已更新")
	})

	// ---------- 后台监控与用户管理 ----------

	api.Get("/admin/metrics", requireAuth, requireAdmin, func(ctx iris.Context) {
		ok(ctx, 200, service.GetMonitor().Snapshot())
	})

	api.Get("/admin/users", requireAuth, requireAdmin, func(ctx iris.Context) {
		list, err := userSvc.ListAll(ctx.Request().Context())
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, 200, list)
	})
}
