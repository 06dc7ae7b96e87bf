package server

import (
	"net/http"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/cimyrichardson/art-store/internal/errs"
)

// ok 成功响应 {success, data}
func ok(ctx iris.Context, status int, data interface{}) {
	ctx.StatusCode(status)
	_ = ctx.JSON(iris.Map{"success": true, "data": data})
}

// okMessage 成功但只有提示语的响应
func okMessage(ctx iris.Context, message string) {
	_ = ctx.JSON(iris.Map{"success": true, "message": message})
}

// okPage 带分页信息的成功响应
func okPage(ctx iris.Context, data interface{}, meta interface{}) {
	_ = ctx.JSON(iris.Map{"success": true, "data": data, "meta": meta})
}

// fail 统一错误出口：业务错误透出 message，其余记日志并回 500 通用提示。
func fail(ctx iris.Context, err error) {
	status := errs.StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.Error(err))
		message = "服务器内部错误"
	}
	ctx.StopWithJSON(status, iris.Map{"success": false, "message": message})
}
