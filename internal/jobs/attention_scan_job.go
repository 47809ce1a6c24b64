package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// AttentionScanJob periodically surfaces orders stuck in a non-terminal
// status and products that have fallen to their reorder level. It only
// logs; acting on the findings is an operator decision.
type AttentionScanJob struct {
	attentionHandler queries.GetAttentionOrdersQueryHandler
	lowStockHandler  queries.GetLowStockQueryHandler
	cutoff           time.Duration
	schedule         string
	cron             *cron.Cron
	logger           *slog.Logger
}

// NewAttentionScanJob creates a job that flags orders untouched for longer
// than cutoff, on the given cron schedule.
func NewAttentionScanJob(
	attentionHandler queries.GetAttentionOrdersQueryHandler,
	lowStockHandler queries.GetLowStockQueryHandler,
	cutoff time.Duration,
	schedule string,
	logger *slog.Logger,
) *AttentionScanJob {
	return &AttentionScanJob{
		attentionHandler: attentionHandler,
		lowStockHandler:  lowStockHandler,
		cutoff:           cutoff,
		schedule:         schedule,
		cron:             cron.New(),
		logger:           logger.With("component", "attention_scan_job"),
	}
}

// Start schedules the attention scan.
func (j *AttentionScanJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		j.scanStuckOrders(ctx)
		j.scanLowStock(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Attention scan job started",
		"schedule", j.schedule, "cutoff", j.cutoff)
	return nil
}

// Stop stops the attention scan.
func (j *AttentionScanJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Attention scan job stopped")
}

func (j *AttentionScanJob) scanStuckOrders(ctx context.Context) {
	query, err := queries.NewGetAttentionOrdersQuery(j.cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Attention scan misconfigured", "error", err)
		return
	}

	stuck, err := j.attentionHandler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Attention scan failed", "error", err)
		return
	}

	for _, o := range stuck {
		j.logger.WarnContext(ctx, "Order needs attention",
			"order_id", o.ID.String(),
			"order_number", o.OrderNumber,
			"status", o.Status.String(),
			"updated_at", o.UpdatedAt)
	}
}

func (j *AttentionScanJob) scanLowStock(ctx context.Context) {
	low, err := j.lowStockHandler.Handle(ctx, queries.NewGetLowStockQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Low stock scan failed", "error", err)
		return
	}

	for _, record := range low {
		j.logger.WarnContext(ctx, "Product needs restock",
			"product_id", record.ProductID.String(),
			"quantity_available", record.QuantityAvailable,
			"reorder_level", record.ReorderLevel)
	}
}
