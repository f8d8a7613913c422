package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/rosterlab/memberd/internal/api/http/context"
	"github.com/rosterlab/memberd/internal/api/http/router"
	httpServer "github.com/rosterlab/memberd/internal/api/http/server"
	"github.com/rosterlab/memberd/internal/authz"
	"github.com/rosterlab/memberd/internal/config"
	"github.com/rosterlab/memberd/internal/logger"
	"github.com/rosterlab/memberd/internal/model"
	"github.com/rosterlab/memberd/internal/password"
	"github.com/rosterlab/memberd/internal/repository/postgres"
	"github.com/rosterlab/memberd/internal/service"
	"github.com/rosterlab/memberd/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	memberRepo := postgres.NewMemberRepository(db)
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	tokenManager := token.NewJWT(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	policy := authz.NewEngine()
	ctxMgr := httpctx.NewManager()

	authService := service.NewAuth(memberRepo, hasher, tokenManager, logger)
	memberService := service.NewMember(memberRepo, policy, logger)

	r := router.New(authService, memberService, tokenManager, ctxMgr, logger)
	server := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = httpServer.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = httpServer.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(server)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", server.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
