package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Gachagokimani/Cybersmarter-business-system/config"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/adminapi"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/app"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/webserver"
)

var (
	conffile = flag.String("c", "/etc/cybersmarter.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	showVer  = flag.Bool("v", false, "show version")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println(version)
		return
	}

	// .env is optional; real deployments set environment directly
	_ = godotenv.Load()

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	webserver.Init(application)
	adminapi.Register()

	go func() {
		if err := webserver.Listen(); err != nil {
			zap.L().Error("web server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := webserver.Shutdown(ctx); err != nil {
		zap.L().Error("shutdown error", zap.Error(err))
	}
}
