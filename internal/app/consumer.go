package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"poolops/internal/employee"
	"poolops/internal/events"
	"poolops/internal/messaging/kafka/consumer"
	"poolops/internal/payout"
	"poolops/internal/payperiod"
	"poolops/internal/payslip"
	"poolops/internal/settings"
	"poolops/internal/shared/connection"
	"poolops/internal/timeentry"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer renders payslips for processed pay periods until interrupted.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	employeeRepo := employee.NewRepository(gormDB)
	timeentryRepo := timeentry.NewRepository(gormDB)
	payoutRepo := payout.NewRepository(gormDB)
	payperiodRepo := payperiod.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)

	settingsService := settings.NewService(sqlDB, settingsRepo)
	payperiodService := payperiod.NewService(sqlDB, payperiodRepo, employeeRepo, timeentryRepo, payoutRepo, nil)

	generator := payslip.NewGenerator(os.Getenv("PAYSLIP_DIR"))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayPeriodProcessedTopic,
		GroupID:        "poolops-payslip",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayPeriodProcessed(ctx, reader, payperiodService, settingsService, generator, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
