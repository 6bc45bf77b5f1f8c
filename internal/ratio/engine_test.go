package ratio

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bs(account, amount string) StatementLineItem {
	return StatementLineItem{AccountName: account, Division: DivisionBS, CurrentAmount: amount}
}

func is(account, amount string) StatementLineItem {
	return StatementLineItem{AccountName: account, Division: DivisionIS, CurrentAmount: amount}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewDefaultEngine()
	require.NoError(t, err)
	return e
}

// 삼성전자 2023 사업보고서 (연결) 주요계정 발췌
func fullStatement() []StatementLineItem {
	return []StatementLineItem{
		bs("유동자산", "195,936,557,000,000"),
		bs("비유동자산", "259,969,780,000,000"),
		bs("자산총계", "455,905,980,000,000"),
		bs("유동부채", "75,719,452,000,000"),
		bs("부채총계", "92,228,115,000,000"),
		bs("자본총계", "363,677,865,000,000"),
		is("매출액", "258,935,494,000,000"),
		is("영업이익", "6,566,976,000,000"),
		is("당기순이익", "15,487,100,000,000"),
	}
}

func TestCompute_AllRatios(t *testing.T) {
	result, err := newTestEngine(t).Compute(fullStatement())
	require.NoError(t, err)
	require.Len(t, result, 5)

	assert.Equal(t, Value{DisplayName: "유동비율", Value: 258.77, Unit: "%"}, result["current_ratio"])
	assert.Equal(t, Value{DisplayName: "부채비율", Value: 25.36, Unit: "%"}, result["debt_ratio"])
	assert.Equal(t, Value{DisplayName: "순이익률", Value: 5.98, Unit: "%"}, result["profit_margin"])
	assert.Equal(t, Value{DisplayName: "ROE (자기자본이익률)", Value: 4.26, Unit: "%"}, result["roe"])
	assert.Equal(t, Value{DisplayName: "ROA (총자산이익률)", Value: 3.40, Unit: "%"}, result["roa"])
}

func TestCompute_CurrentRatio(t *testing.T) {
	result, err := newTestEngine(t).Compute([]StatementLineItem{
		bs("유동자산", "1,200,000"),
		bs("유동부채", "600,000"),
	})
	require.NoError(t, err)

	assert.Equal(t, Value{DisplayName: "유동비율", Value: 200.0, Unit: Unit}, result["current_ratio"])
	assert.Len(t, result, 1)
}

func TestCompute_ZeroDenominatorOmitted(t *testing.T) {
	result, err := newTestEngine(t).Compute([]StatementLineItem{
		bs("부채총계", "500,000"),
		bs("자본총계", "0"),
		is("당기순이익", "10,000"),
		bs("자산총계", "500,000"),
	})
	require.NoError(t, err)

	assert.NotContains(t, result, "debt_ratio")
	assert.NotContains(t, result, "roe")
	assert.Equal(t, 2.0, result["roa"].Value)
}

func TestCompute_IncomeStatementOnly(t *testing.T) {
	result, err := newTestEngine(t).Compute([]StatementLineItem{
		is("매출액", "1,000"),
		is("당기순이익", "150"),
	})
	require.NoError(t, err)

	assert.Equal(t, Result{
		"profit_margin": {DisplayName: "순이익률", Value: 15.0, Unit: "%"},
	}, result)
}

func TestCompute_UnparsableAmountIsolated(t *testing.T) {
	items := fullStatement()
	for i := range items {
		if items[i].AccountName == "자본총계" {
			items[i].CurrentAmount = "N/A"
		}
	}

	result, err := newTestEngine(t).Compute(items)
	require.NoError(t, err)

	// 자본총계 affects only debt_ratio and roe
	assert.NotContains(t, result, "debt_ratio")
	assert.NotContains(t, result, "roe")
	assert.Contains(t, result, "current_ratio")
	assert.Contains(t, result, "profit_margin")
	assert.Contains(t, result, "roa")
}

func TestCompute_NumeratorUnparsable(t *testing.T) {
	result, err := newTestEngine(t).Compute([]StatementLineItem{
		is("당기순이익", "-"),
		is("매출액", "1,000"),
		bs("자본총계", "1,000"),
		bs("자산총계", "1,000"),
		bs("유동자산", "300"),
		bs("유동부채", "100"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"current_ratio"}, keys(result))
}

func TestCompute_DivisionMatters(t *testing.T) {
	// 당기순이익 reported under BS must not feed IS-based ratios
	result, err := newTestEngine(t).Compute([]StatementLineItem{
		bs("당기순이익", "100"),
		is("매출액", "1,000"),
		bs("자본총계", "1,000"),
	})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestCompute_LastDuplicateWins(t *testing.T) {
	result, err := newTestEngine(t).Compute([]StatementLineItem{
		bs("유동자산", "100"),
		bs("유동부채", "100"),
		bs("유동자산", "300"),
	})
	require.NoError(t, err)
	assert.Equal(t, 300.0, result["current_ratio"].Value)
}

func TestCompute_IgnoresOtherDivisions(t *testing.T) {
	result, err := newTestEngine(t).Compute([]StatementLineItem{
		{AccountName: "유동자산", Division: "CF", CurrentAmount: "100"},
		{AccountName: "유동부채", Division: "CIS", CurrentAmount: "100"},
	})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestCompute_EmptyInput(t *testing.T) {
	result, err := newTestEngine(t).Compute(nil)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestCompute_NegativeValues(t *testing.T) {
	result, err := newTestEngine(t).Compute([]StatementLineItem{
		is("당기순이익", "-2,500"),
		is("매출액", "10,000"),
		bs("부채총계", "1,000"),
		bs("자본총계", "-500"),
	})
	require.NoError(t, err)

	assert.Equal(t, -25.0, result["profit_margin"].Value)
	assert.Equal(t, -200.0, result["debt_ratio"].Value, "negative equity is computed, only zero is omitted")
	assert.Equal(t, 500.0, result["roe"].Value)
}

func TestCompute_Rounding(t *testing.T) {
	result, err := newTestEngine(t).Compute([]StatementLineItem{
		bs("유동자산", "1"),
		bs("유동부채", "3"),
	})
	require.NoError(t, err)
	assert.Equal(t, 33.33, result["current_ratio"].Value)
}

func TestCompute_MissingDivisionIsContractViolation(t *testing.T) {
	_, err := newTestEngine(t).Compute([]StatementLineItem{
		bs("유동자산", "100"),
		{AccountName: "유동부채", CurrentAmount: "100"},
	})
	assert.ErrorIs(t, err, ErrMalformedLineItem)
}

func TestCompute_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	first, err := e.Compute(fullStatement())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := e.Compute(fullStatement())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCompute_Concurrent(t *testing.T) {
	e := newTestEngine(t)
	want, err := e.Compute(fullStatement())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Compute(fullStatement())
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"12,345", 12345, true},
		{"1,234,567", 1234567, true},
		{"-12,345", -12345, true},
		{"0", 0, true},
		{" 42 ", 42, true},
		{"1234.5", 1234.5, true},
		{"", 0, false},
		{"   ", 0, false},
		{"-", 0, false},
		{"N/A", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"1,2a3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseAmount(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func keys(r Result) []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	return out
}
