package timeslice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeslice-go/timeslice"
)

func TestStrategyConfig_Strategy(t *testing.T) {
	tests := []struct {
		name    string
		config  timeslice.StrategyConfig
		want    string
		wantErr bool
	}{
		{
			name:   "Iterations",
			config: timeslice.StrategyConfig{Budget: "iterations", Amount: 10},
			want:   "iterations(10)",
		},
		{
			name:   "Milliseconds",
			config: timeslice.StrategyConfig{Budget: "milliseconds", Amount: 25},
			want:   "milliseconds(25ms)",
		},
		{
			name:   "FractionalMilliseconds",
			config: timeslice.StrategyConfig{Budget: "milliseconds", Amount: 0.5},
			want:   "milliseconds(500µs)",
		},
		{
			name:    "ZeroIterations",
			config:  timeslice.StrategyConfig{Budget: "iterations", Amount: 0},
			wantErr: true,
		},
		{
			name:    "FractionalIterations",
			config:  timeslice.StrategyConfig{Budget: "iterations", Amount: 2.5},
			wantErr: true,
		},
		{
			name:    "NegativeMilliseconds",
			config:  timeslice.StrategyConfig{Budget: "milliseconds", Amount: -1},
			wantErr: true,
		},
		{
			name:    "UnknownBudget",
			config:  timeslice.StrategyConfig{Budget: "seconds", Amount: 1},
			wantErr: true,
		},
		{
			name:    "EmptyBudget",
			config:  timeslice.StrategyConfig{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.config.Strategy()
			if tt.wantErr {
				assert.ErrorIs(t, err, timeslice.ErrInvalidStrategy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.String())
		})
	}
}

func TestParseStrategyConfig(t *testing.T) {
	t.Run("YAML", func(t *testing.T) {
		s, err := timeslice.ParseStrategyConfig([]byte("budget: iterations\namount: 3\n"))
		require.NoError(t, err)
		assert.Equal(t, timeslice.BudgetIterations, s.Budget())
		assert.Equal(t, "iterations(3)", s.String())
	})

	t.Run("JSON", func(t *testing.T) {
		s, err := timeslice.ParseStrategyConfig([]byte(`{"budget": "milliseconds", "amount": 25}`))
		require.NoError(t, err)
		assert.Equal(t, timeslice.BudgetMilliseconds, s.Budget())
		assert.Equal(t, "milliseconds(25ms)", s.String())
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := timeslice.ParseStrategyConfig([]byte("budget: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("InvalidValues", func(t *testing.T) {
		_, err := timeslice.ParseStrategyConfig([]byte("budget: iterations\namount: -2\n"))
		assert.ErrorIs(t, err, timeslice.ErrInvalidStrategy)
	})
}

func TestBudget_String(t *testing.T) {
	assert.Equal(t, "iterations", timeslice.BudgetIterations.String())
	assert.Equal(t, "milliseconds", timeslice.BudgetMilliseconds.String())
	assert.Equal(t, "unknown", timeslice.Budget(42).String())
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "iterations(5)", timeslice.Iterations(5).String())
	assert.Equal(t, "milliseconds(1s)", timeslice.Milliseconds(time.Second).String())
}
