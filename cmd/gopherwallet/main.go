package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/fonarev/gopherwallet.git/internal/auth"
	"github.com/fonarev/gopherwallet.git/internal/events"
	"github.com/fonarev/gopherwallet.git/internal/httpserver"
	"github.com/fonarev/gopherwallet.git/internal/logger"
	"github.com/fonarev/gopherwallet.git/internal/storage/postrge"
	"github.com/fonarev/gopherwallet.git/internal/stream"
	"github.com/fonarev/gopherwallet.git/internal/wallets"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := parseFlags(); err != nil {
		log.Fatal(err)
	}
	if err := logger.Initialize(CliOptions.LogLevel); err != nil {
		panic(fmt.Errorf("method main: %v", err))
	}
	logger.Log.Info("Flags parsed",
		zap.String("flags", CliOptions.String()))

	logger.Log.Info("Starting service")
	if err := run(); err != nil {
		logger.Log.Fatal("", zap.Error(err))
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	DBConn, err := postrge.NewConnection(ctx, CliOptions.DatabaseDSN)
	if err != nil {
		return err
	}
	defer DBConn.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     CliOptions.RedisAddr,
		Password: CliOptions.RedisPass,
	})
	defer rdb.Close()

	st := postrge.NewPsqlStorage(DBConn)
	hub := stream.NewHub()
	publisher := events.NewRedisPublisher(rdb)
	subscriber := events.NewSubscriber(rdb, hub)

	authSrv := auth.NewAService(st, DBConn, []byte(CliOptions.Key))
	walletSrv := wallets.NewWService(st, st, st, DBConn, publisher)

	handlers := httpserver.NewHandlers(authSrv, walletSrv, hub)
	service := httpserver.NewService(CliOptions.APIAddress.String(), handlers, authSrv)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return service.Run()
	})

	g.Go(func() error {
		return subscriber.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Log.Info("Shutting down")
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		return service.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Log.Debug("exit with error", zap.Error(err))
		return err
	}
	return nil
}
