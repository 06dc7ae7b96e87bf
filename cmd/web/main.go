package main

import (
	"flag"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/cimyrichardson/art-store/internal/config"
	"github.com/cimyrichardson/art-store/internal/logger"
	"github.com/cimyrichardson/art-store/internal/server"
)

func main() {
	configPath := flag.String("config", "./config", "配置文件目录")
	debug := flag.Bool("debug", false, "开启调试日志")
	flag.Parse()

	logger.Init(*debug)

	cfg, err := config.Load(*configPath)
	if err != nil {
		zap.L().Fatal("load config failed", zap.Error(err))
	}

	app := iris.New()
	server.RegisterRoutes(app, cfg)

	addr := cfg.Server.Addr()
	zap.L().Info("web server listening", zap.String("addr", addr))
	if err := app.Run(
		iris.Addr(addr),
		iris.WithCharset("UTF-8"),
		iris.WithoutServerError(iris.ErrServerClosed),
	); err != nil {
		zap.L().Fatal("app run failed", zap.Error(err))
	}
}
