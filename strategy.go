package timeslice

import (
	"fmt"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

// Budget identifies how a batching strategy bounds each batch.
type Budget int

const (
	// BudgetIterations bounds each batch by a fixed number of elements.
	BudgetIterations Budget = iota

	// BudgetMilliseconds bounds each batch by a wall-clock time budget.
	BudgetMilliseconds
)

// Budget names as they appear in external configuration.
const (
	budgetNameIterations   = "iterations"
	budgetNameMilliseconds = "milliseconds"
)

// String returns the configuration name of the budget.
func (b Budget) String() string {
	switch b {
	case BudgetIterations:
		return budgetNameIterations
	case BudgetMilliseconds:
		return budgetNameMilliseconds
	default:
		return "unknown"
	}
}

// Strategy is an immutable batching policy chosen at construction. Create
// one with Iterations or Milliseconds, or from external configuration via
// StrategyConfig.
type Strategy struct {
	budget     Budget
	iterations int
	interval   time.Duration
}

// Iterations returns a strategy where each batch processes at most amount
// elements before yielding back to the scheduler. The amount must be
// positive; New rejects the strategy otherwise.
func Iterations(amount int) Strategy {
	return Strategy{
		budget:     BudgetIterations,
		iterations: amount,
	}
}

// Milliseconds returns a strategy where each batch keeps processing
// elements while the time elapsed since the batch started is strictly less
// than amount. The elapsed time is checked between elements, never
// mid-element, so a batch can overrun the budget by at most one element's
// processing time. The amount must be positive; New rejects the strategy
// otherwise.
func Milliseconds(amount time.Duration) Strategy {
	return Strategy{
		budget:   BudgetMilliseconds,
		interval: amount,
	}
}

// Budget returns the budget kind of the strategy.
func (s Strategy) Budget() Budget {
	return s.budget
}

// String describes the strategy, e.g. "iterations(3)" or "milliseconds(25ms)".
func (s Strategy) String() string {
	switch s.budget {
	case BudgetIterations:
		return fmt.Sprintf("%s(%d)", budgetNameIterations, s.iterations)
	case BudgetMilliseconds:
		return fmt.Sprintf("%s(%v)", budgetNameMilliseconds, s.interval)
	default:
		return "unknown"
	}
}

func (s Strategy) validate() error {
	switch s.budget {
	case BudgetIterations:
		if s.iterations <= 0 {
			return fmt.Errorf("%w: iterations amount must be positive, got %d",
				ErrInvalidStrategy, s.iterations)
		}
	case BudgetMilliseconds:
		if s.interval <= 0 {
			return fmt.Errorf("%w: milliseconds amount must be positive, got %v",
				ErrInvalidStrategy, s.interval)
		}
	default:
		return fmt.Errorf("%w: unknown budget %d", ErrInvalidStrategy, int(s.budget))
	}
	return nil
}

// StrategyConfig is the external, serializable form of a Strategy:
//
//	budget: iterations
//	amount: 10
//
// or
//
//	{"budget": "milliseconds", "amount": 25}
//
// For the iterations budget, Amount is a positive whole number of elements
// per batch. For the milliseconds budget, Amount is a positive number of
// milliseconds and may be fractional.
type StrategyConfig struct {
	Budget string  `json:"budget" yaml:"budget"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// Strategy converts the configuration into a validated Strategy.
func (c StrategyConfig) Strategy() (Strategy, error) {
	switch c.Budget {
	case budgetNameIterations:
		if c.Amount != math.Trunc(c.Amount) {
			return Strategy{}, fmt.Errorf("%w: iterations amount must be a whole number, got %v",
				ErrInvalidStrategy, c.Amount)
		}
		s := Iterations(int(c.Amount))
		return s, s.validate()

	case budgetNameMilliseconds:
		s := Milliseconds(time.Duration(c.Amount * float64(time.Millisecond)))
		return s, s.validate()

	default:
		return Strategy{}, fmt.Errorf("%w: unknown budget %q", ErrInvalidStrategy, c.Budget)
	}
}

// ParseStrategyConfig parses a YAML or JSON document holding a
// StrategyConfig and converts it into a validated Strategy.
func ParseStrategyConfig(data []byte) (Strategy, error) {
	var c StrategyConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Strategy{}, fmt.Errorf("timeslice: parsing strategy config: %w", err)
	}
	return c.Strategy()
}
