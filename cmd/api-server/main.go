package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"menuhub/internal/auth"
	"menuhub/internal/menuapi"
	"menuhub/internal/store"
	"menuhub/pkg/logger"
	"menuhub/pkg/utils"
)

func main() {
	cfg := utils.LoadEnv()
	var (
		addr         = flag.String("addr", cfg.Server.HTTPAddr, "listen address")
		staticMenu   = flag.String("static-menu", cfg.Server.StaticMenu, "menu.json served at /static/menu.json")
		hashPassword = flag.String("hash-password", "", "print a bcrypt hash for MENUHUB_ADMIN_PASSWORD_HASH and exit")
	)
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	lg := logger.NewZapLogger(cfg.ZapConfig())
	defer lg.Sync()

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	openCtx, cancelOpen := context.WithTimeout(context.Background(), cfg.Database.Timeout)
	s, err := store.Open(openCtx, cfg.Database)
	cancelOpen()
	if err != nil {
		lg.Fatal("open store failed", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer s.Close()

	if strings.EqualFold(cfg.Database.Driver, "memory") {
		seedCtx, cancelSeed := context.WithTimeout(context.Background(), cfg.Database.Timeout)
		rep, err := store.NewImporter(s, lg).ImportFile(seedCtx, *staticMenu)
		cancelSeed()
		if err != nil {
			lg.Fatal("seed memory store failed", zap.String("menu", *staticMenu), zap.Error(err))
		}
		lg.Info("memory store seeded", zap.String("menu", *staticMenu),
			zap.Int("categories", rep.CategoriesUpserted), zap.Int("items", rep.ItemsUpserted))
	}

	if !cfg.Auth.AdminEnabled() {
		lg.Warn("MENUHUB_JWT_SECRET or MENUHUB_ADMIN_PASSWORD_HASH not set, admin endpoints disabled")
	}

	router := menuapi.NewRouter(menuapi.RouterConfig{
		Store:     s,
		StoreName: cfg.Database.Driver,
		Tokens: auth.TokenService{
			Secret:   []byte(cfg.Auth.JWTSecret),
			Issuer:   cfg.Auth.JWTIssuer,
			Duration: cfg.Auth.JWTDuration,
		},
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
		StaticMenuPath:    *staticMenu,
		Log:               lg,
	})

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("HTTP API server listening", zap.String("addr", *addr), zap.String("store", cfg.Database.Driver))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		lg.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		lg.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http shutdown error", zap.Error(err))
	}
	lg.Info("server stopped")
}
