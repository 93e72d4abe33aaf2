package risk

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        Inputs
		wantUnits int64
		wantRPU   string
		wantAmt   string
	}{
		{
			name:      "long two percent",
			in:        Inputs{Balance: d("100000"), RiskPercent: d("2"), EntryPrice: d("100"), StopPrice: d("95")},
			wantUnits: 400,
			wantRPU:   "5",
			wantAmt:   "2000",
		},
		{
			name:      "short stop above entry",
			in:        Inputs{Balance: d("100000"), RiskPercent: d("2"), EntryPrice: d("100"), StopPrice: d("105")},
			wantUnits: 400,
			wantRPU:   "5",
			wantAmt:   "2000",
		},
		{
			name:      "floors fractional units",
			in:        Inputs{Balance: d("10000"), RiskPercent: d("1"), EntryPrice: d("50"), StopPrice: d("47")},
			wantUnits: 33,
			wantRPU:   "3",
			wantAmt:   "100",
		},
		{
			name:      "budget below one unit",
			in:        Inputs{Balance: d("1000"), RiskPercent: d("0.1"), EntryPrice: d("100"), StopPrice: d("90")},
			wantUnits: 0,
			wantRPU:   "10",
			wantAmt:   "1",
		},
		{
			name:      "zero distance",
			in:        Inputs{Balance: d("1000"), RiskPercent: d("1"), EntryPrice: d("100"), StopPrice: d("100")},
			wantUnits: 0,
			wantRPU:   "0",
			wantAmt:   "10",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Calculate(tt.in)
			assert.Equal(t, tt.wantUnits, got.Units)
			assert.True(t, d(tt.wantRPU).Equal(got.RiskPerUnit), "rpu %s", got.RiskPerUnit)
			assert.True(t, d(tt.wantAmt).Equal(got.RiskAmount), "amount %s", got.RiskAmount)
		})
	}
}

func TestClamps(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(333), MaxAffordable(d("1000"), d("3")))
	assert.Equal(t, int64(0), MaxAffordable(d("2.99"), d("3")))
	assert.Equal(t, int64(2000), MaxMarginable(d("100000"), d("100"), ShortMarginRate))
	assert.True(t, d("20000").Equal(Margin(d("100"), 400, ShortMarginRate)))
	assert.True(t, d("40000").Equal(Notional(d("100"), 400)))
}

func TestRR(t *testing.T) {
	t.Parallel()

	assert.True(t, d("2").Equal(RR(d("100"), d("95"), d("110"))))
	assert.True(t, d("2").Equal(RR(d("100"), d("105"), d("90"))))
	assert.True(t, RR(d("100"), d("100"), d("110")).IsZero())
}

func TestPlannedRisk(t *testing.T) {
	t.Parallel()

	planned := PlannedRisk(400, d("100"), d("95"))
	assert.True(t, d("2000").Equal(planned))
	assert.True(t, d("2").Equal(RiskPct(planned, d("100000"))))
	assert.True(t, RiskPct(planned, decimal.Zero).IsZero())
}
