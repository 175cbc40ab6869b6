package rfm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rfm/internal/retail"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=rfm
type Source interface {
	LoadTransactions(ctx context.Context) ([]retail.Transaction, error)
}

type Service struct {
	src Source
}

func NewService(src Source) *Service {
	return &Service{src: src}
}

// Segment loads every transaction from the source and runs the pipeline.
func (s *Service) Segment(ctx context.Context, asOf time.Time) (*Result, error) {
	txs, err := s.src.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	return Run(txs, asOf)
}

// Run executes clean, aggregate, score and segment over txs.
func Run(txs []retail.Transaction, asOf time.Time) (*Result, error) {
	res := &Result{RunID: uuid.New()}
	log := slog.With("run_id", res.RunID, "as_of", asOf.Format(time.DateOnly))

	items := Clean(txs)
	res.Stats.Transactions = len(txs)
	res.Stats.LineItems = len(items)
	log.Info("cleaned transactions", "kept", len(items), "dropped", len(txs)-len(items))

	all, err := groupByCustomer(items, asOf)
	if err != nil {
		return nil, fmt.Errorf("aggregating: %w", err)
	}

	metrics := positiveMonetary(all)
	res.Stats.Aggregated = len(all)
	res.Stats.NonPositive = len(all) - len(metrics)
	log.Info("aggregated customers", "customers", len(all), "non_positive", res.Stats.NonPositive)

	scored, err := Score(metrics)
	if err != nil {
		return nil, err
	}

	res.Stats.Scored = len(scored)

	res.Customers, err = Assign(scored)
	if err != nil {
		return nil, fmt.Errorf("segmenting: %w", err)
	}

	log.Info("segmented customers", "customers", len(res.Customers))

	return res, nil
}
