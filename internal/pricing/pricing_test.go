package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/darcyvale/vitrine/internal/pricing"
)

func int64Ptr(v int64) *int64 { return &v }

func TestTax(t *testing.T) {
	tests := []struct {
		name string
		net  int64
		want int64
	}{
		{name: "Zero", net: 0, want: 0},
		{name: "Exact", net: 25_000_000, want: 4_750_000},
		{name: "RoundsUp", net: 103, want: 20},      // 19.57
		{name: "RoundsDown", net: 102, want: 19},    // 19.38
		{name: "RoundsHalfUp", net: 50, want: 10},   // 9.5
		{name: "Negative", net: -1000, want: -190},  // passes through unchanged
		{name: "NegativeHalf", net: -50, want: -10}, // half away from zero
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.Tax(tt.net))
		})
	}
}

func TestDebt(t *testing.T) {
	tests := []struct {
		name               string
		total, inst1, inst2 int64
		want               int64
	}{
		{name: "NothingPaid", total: 1000, want: 1000},
		{name: "PartiallyPaid", total: 1000, inst1: 300, inst2: 200, want: 500},
		{name: "FullyPaid", total: 1000, inst1: 500, inst2: 500, want: 0},
		{name: "OverpaidClampsToZero", total: 1000, inst1: 1500, want: 0},
		{name: "ZeroTotal", total: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Debt(tt.total, tt.inst1, tt.inst2)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, int64(0))
		})
	}
}

func TestPaymentStatus(t *testing.T) {
	tests := []struct {
		name              string
		debt, inst1, inst2 int64
		want              pricing.Status
	}{
		{name: "PaidWhenNoDebt", debt: 0, inst1: 500, want: pricing.StatusPaid},
		{name: "PaidOnZeroTotalNoInstallments", debt: 0, want: pricing.StatusPaid},
		{name: "PartialWhenSomePaid", debt: 500, inst1: 500, want: pricing.StatusPartial},
		{name: "PartialOnSecondInstallmentOnly", debt: 500, inst2: 500, want: pricing.StatusPartial},
		{name: "UnpaidWhenNothingPaid", debt: 1000, want: pricing.StatusUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.PaymentStatus(tt.debt, tt.inst1, tt.inst2))
		})
	}
}

func TestProfit(t *testing.T) {
	assert.Equal(t, int64(2_000_000), pricing.Profit(10_000_000, int64Ptr(8_000_000), 9_000_000))
	// Without a base cost the net amount is the fallback.
	assert.Equal(t, int64(1_000_000), pricing.Profit(10_000_000, nil, 9_000_000))
}

func TestCalculate(t *testing.T) {
	type testCase struct {
		name string
		in   pricing.Input
		want pricing.Breakdown
	}

	tests := []testCase{
		{
			name: "PartialPayment",
			in:   pricing.Input{Net: 25_000_000, Installment1: 10_000_000, Installment2: 10_000_000},
			want: pricing.Breakdown{
				Tax:        4_750_000,
				Total:      29_750_000,
				Debt:       9_750_000,
				SaleAmount: 29_750_000,
				Profit:     4_750_000,
				Status:     pricing.StatusPartial,
			},
		},
		{
			name: "NothingPaid",
			in:   pricing.Input{Net: 18_000_000},
			want: pricing.Breakdown{
				Tax:        3_420_000,
				Total:      21_420_000,
				Debt:       21_420_000,
				SaleAmount: 21_420_000,
				Profit:     3_420_000,
				Status:     pricing.StatusUnpaid,
			},
		},
		{
			name: "InstallmentExceedsTotal",
			in:   pricing.Input{Net: 8_500_000, Installment1: 10_115_000},
			want: pricing.Breakdown{
				Tax:        1_615_000,
				Total:      10_115_000,
				Debt:       0,
				SaleAmount: 10_115_000,
				Profit:     1_615_000,
				Status:     pricing.StatusPaid,
			},
		},
		{
			name: "ZeroNetIsPaid",
			in:   pricing.Input{},
			want: pricing.Breakdown{Status: pricing.StatusPaid},
		},
		{
			name: "SaleAmountOverrideAndCost",
			in: pricing.Input{
				Net:          10_000_000,
				Installment1: 5_000_000,
				SaleAmount:   int64Ptr(13_000_000),
				Cost:         int64Ptr(9_000_000),
			},
			want: pricing.Breakdown{
				Tax:        1_900_000,
				Total:      11_900_000,
				Debt:       6_900_000,
				SaleAmount: 13_000_000,
				Profit:     4_000_000,
				Status:     pricing.StatusPartial,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Calculate(tt.in)
			assert.Equal(t, tt.want, got)

			// No hidden state: a second call must agree with the first.
			assert.Equal(t, got, pricing.Calculate(tt.in))
		})
	}
}
