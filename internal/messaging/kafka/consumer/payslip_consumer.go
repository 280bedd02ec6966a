package consumer

import (
	"context"
	"encoding/json"

	"poolops/internal/events"
	"poolops/internal/payperiod"
	"poolops/internal/payslip"
	"poolops/internal/settings"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayPeriodProcessed renders a payslip PDF for every payroll record of
// a freshly processed period and stores the path back on the record.
func ConsumePayPeriodProcessed(
	ctx context.Context,
	reader *kafkago.Reader,
	payperiodService payperiod.Service,
	settingsService settings.Service,
	generator *payslip.Generator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip")
	log.Info("payslip consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip consumer stopped")
				return
			}
			log.Error("fetch payslip message failed", zap.Error(err))
			continue
		}

		var event events.PayPeriodProcessedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode pay period processed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := renderPayslips(ctx, event, payperiodService, settingsService, generator, log); err != nil {
			log.Error("render payslips failed",
				zap.String("pay_period_id", event.PayPeriodID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payslip message failed", zap.Error(err))
			continue
		}

		log.Info("payslips generated",
			zap.String("pay_period_id", event.PayPeriodID),
			zap.Int("records", event.RecordCount),
		)
	}
}

func renderPayslips(
	ctx context.Context,
	event events.PayPeriodProcessedEvent,
	payperiodService payperiod.Service,
	settingsService settings.Service,
	generator *payslip.Generator,
	log *zap.Logger,
) error {
	period, err := payperiodService.GetByID(ctx, event.PayPeriodID)
	if err != nil {
		return err
	}

	records, err := payperiodService.Records(ctx, event.PayPeriodID)
	if err != nil {
		return err
	}

	companyName := ""
	if settingsService != nil {
		if conf, err := settingsService.Get(ctx); err == nil {
			companyName = conf.CompanyName
		}
	}

	for _, rec := range records {
		path, err := generator.Generate(companyName, period, rec)
		if err != nil {
			log.Error("generate payslip failed",
				zap.String("record_id", rec.ID),
				zap.Error(err),
			)
			continue
		}

		if err := payperiodService.AttachPayslip(ctx, rec.ID, path); err != nil {
			log.Error("attach payslip failed",
				zap.String("record_id", rec.ID),
				zap.Error(err),
			)
		}
	}

	return nil
}
