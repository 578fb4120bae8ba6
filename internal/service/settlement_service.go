package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/vixducis/pour-decisions/internal/calculator"
	"github.com/vixducis/pour-decisions/internal/metrics"
	"github.com/vixducis/pour-decisions/internal/storage"
)

// DefaultSettleConcurrency bounds SettleGroups when no limit is configured.
const DefaultSettleConcurrency = 4

// SettlementService implements the Connect SettlementService.
// Balances and settlements are recomputed from a fresh snapshot on every call.
type SettlementService struct {
	store       storage.Store
	metrics     *metrics.Settlement
	concurrency int
}

// NewSettlementService creates a SettlementService. m may be nil to disable
// metrics; concurrency below one falls back to DefaultSettleConcurrency.
func NewSettlementService(store storage.Store, m *metrics.Settlement, concurrency int) *SettlementService {
	if concurrency < 1 {
		concurrency = DefaultSettleConcurrency
	}
	return &SettlementService{store: store, metrics: m, concurrency: concurrency}
}

// GetSettlements returns every member's balance and the transfers that settle the group.
func (s *SettlementService) GetSettlements(ctx context.Context, req *connect.Request[GetSettlementsRequest]) (*connect.Response[GetSettlementsResponse], error) {
	slog.Info("GetSettlements request received", "group_id", req.Msg.GroupID)
	if err := validateRequest(SettlementServiceGetSettlementsProcedure, req.Msg); err != nil {
		return nil, err
	}

	result, err := s.settle(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(SettlementServiceGetSettlementsProcedure, err)
	}
	return connect.NewResponse(result), nil
}

// SettleGroups settles several groups concurrently. Results keep request
// order; the first failure cancels the remaining work.
func (s *SettlementService) SettleGroups(ctx context.Context, req *connect.Request[SettleGroupsRequest]) (*connect.Response[SettleGroupsResponse], error) {
	slog.Info("SettleGroups request received", "groups_count", len(req.Msg.GroupIDs))
	if err := validateRequest(SettlementServiceSettleGroupsProcedure, req.Msg); err != nil {
		return nil, err
	}

	results := make([]GetSettlementsResponse, len(req.Msg.GroupIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, groupID := range req.Msg.GroupIDs {
		i, groupID := i, groupID
		g.Go(func() error {
			result, err := s.settle(gctx, groupID)
			if err != nil {
				return fmt.Errorf("group %s: %w", groupID, err)
			}
			results[i] = *result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, toConnectError(SettlementServiceSettleGroupsProcedure, err)
	}

	return connect.NewResponse(&SettleGroupsResponse{Results: results}), nil
}

// settle loads one group and runs the balance and settlement computation on it.
// The transfers are checked against the balances before they are returned.
func (s *SettlementService) settle(ctx context.Context, groupID string) (result *GetSettlementsResponse, err error) {
	start := time.Now()
	defer func() {
		transfers := 0
		if result != nil {
			transfers = len(result.Settlements)
		}
		s.metrics.Observe(outcome(err), transfers, time.Since(start))
	}()

	snapshot, err := s.store.LoadSnapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}
	currency := snapshot.Group.Currency

	balances, err := snapshot.Balances()
	if err != nil {
		return nil, fmt.Errorf("failed to compute balances: %w", err)
	}
	if err := calculator.CheckZeroSum(currency, balances); err != nil {
		return nil, err
	}

	settlements, err := calculator.Settle(currency, balances)
	if err != nil {
		return nil, fmt.Errorf("failed to compute settlements: %w", err)
	}
	if err := calculator.Verify(currency, balances, settlements); err != nil {
		return nil, err
	}

	slog.Debug("Group settled",
		"group_id", groupID,
		"members_count", len(balances),
		"transfers_count", len(settlements),
	)
	return &GetSettlementsResponse{
		Group:       groupView(&snapshot.Group),
		Balances:    calculator.BalanceViews(balances),
		Settlements: calculator.SettlementViews(settlements),
	}, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, storage.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, calculator.ErrUnbalanced):
		return metrics.OutcomeUnbalanced
	default:
		return metrics.OutcomeError
	}
}
