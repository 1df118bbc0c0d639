package usecase

import (
	"context"
	"sync"

	"github.com/smartkart/kiosk/internal/domain"
	"github.com/smartkart/kiosk/internal/presenter"
	"go.uber.org/zap"
)

// BudgetMonitor owns the shopper's budget and the last server-computed status
type BudgetMonitor struct {
	client domain.ShopClient

	mu     sync.RWMutex
	budget float64
	status *domain.BudgetStatus
	seq    Sequencer
}

// NewBudgetMonitor creates a monitor with no budget set
func NewBudgetMonitor(client domain.ShopClient) *BudgetMonitor {
	return &BudgetMonitor{client: client}
}

// SetBudget parses and stores a new budget. Invalid or non-positive input
// resets the budget to zero, which hides the display.
func (m *BudgetMonitor) SetBudget(raw string) (domain.Refresh, error) {
	budget, err := ParseBudget(raw)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.status = nil
	m.seq.Next()
	if err != nil {
		m.budget = 0
		return domain.Refresh{}, err
	}

	m.budget = budget
	return domain.Refresh{Budget: true}, nil
}

// Budget returns the current budget, zero when unset
func (m *BudgetMonitor) Budget() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.budget
}

// Refresh asks the backend to classify the cart against the budget. It does
// nothing while no budget is set.
func (m *BudgetMonitor) Refresh(ctx context.Context) (*domain.BudgetStatus, error) {
	m.mu.RLock()
	budget := m.budget
	m.mu.RUnlock()

	if budget <= 0 {
		return nil, nil
	}

	seq := m.seq.Next()
	status, err := m.client.CheckBudget(ctx, budget)
	if err != nil {
		zap.L().Error("error checking budget", zap.Float64("budget", budget), zap.Error(err))
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.seq.IsLatest(seq) {
		return nil, domain.ErrSuperseded
	}
	m.status = status

	result := *status
	return &result, nil
}

// View renders the budget region
func (m *BudgetMonitor) View() domain.BudgetView {
	m.mu.RLock()
	defer m.mu.RUnlock()

	switch {
	case m.budget <= 0:
		return domain.BudgetView{}
	case m.status == nil:
		return presenter.BudgetPending(m.budget)
	default:
		return presenter.Budget(m.budget, *m.status)
	}
}
