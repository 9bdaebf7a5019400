package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/api"
	"github.com/carson-networks/expense-tracker/internal/config"
	"github.com/carson-networks/expense-tracker/internal/identity"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/memory"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.WithField("storageBackend", envConfig.StorageBackend).Info("expense-tracker starting")

	store, err := openStorage(envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("main.openStorage")
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Error("main.storage close error")
		}
	}()

	delegator := operator.NewOperatorDelegator(store, envConfig.OperatorWorkers, logger)
	delegator.Start()
	defer delegator.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:   logger,
		Port:     envConfig.Port,
		Service:  service.NewService(store, delegator),
		Verifier: identity.NewVerifier(envConfig.JWTSecret),
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("main.Serve")
	}
	logger.Info("expense-tracker stopped")
}

func openStorage(envConfig *config.Config, logger *logrus.Logger) (*storage.Storage, error) {
	if envConfig.StorageBackend == config.StorageBackendMemory {
		return memory.New(), nil
	}

	store, err := storage.NewStorage(envConfig)
	if err != nil {
		return nil, err
	}
	if !envConfig.AutoMigrate {
		return store, nil
	}

	result, err := storage.RunMigrations(store.DB)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  result.PreMigrationVersion,
		"postMigrationVersion": result.PostMigrationVersion,
	}).Info("main.RunMigrations.complete")
	return store, nil
}
