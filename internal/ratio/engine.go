package ratio

import (
	"math"
	"strconv"
	"strings"
)

// Value is one computed ratio
type Value struct {
	DisplayName string  `json:"display_name"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
}

// Result maps ratio id to its value. Ratios that could not be computed are absent.
type Result map[string]Value

// Engine computes a fixed set of ratios.
// ⭐ SSOT: 재무비율 계산은 이 엔진에서만
type Engine struct {
	defs []Definition
}

// NewEngine creates an engine over validated definitions
func NewEngine(defs []Definition) (*Engine, error) {
	if err := validateDefinitions(defs); err != nil {
		return nil, err
	}

	owned := make([]Definition, len(defs))
	copy(owned, defs)
	return &Engine{defs: owned}, nil
}

// NewDefaultEngine creates an engine for the embedded definitions
func NewDefaultEngine() (*Engine, error) {
	defs, err := DefaultDefinitions()
	if err != nil {
		return nil, err
	}
	return &Engine{defs: defs}, nil
}

// Definitions returns the ratio definitions in evaluation order
func (e *Engine) Definitions() []Definition {
	out := make([]Definition, len(e.defs))
	copy(out, e.defs)
	return out
}

// Compute derives every ratio whose accounts are present, parseable and whose
// denominator is non-zero. Each ratio is evaluated on its own; one bad account
// only removes the ratios that use it. An item without a division is a
// contract violation and returns ErrMalformedLineItem.
func (e *Engine) Compute(items []StatementLineItem) (Result, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	accounts := newLookup(items)
	result := make(Result, len(e.defs))
	for _, d := range e.defs {
		v, ok := evaluate(d, accounts)
		if !ok {
			continue
		}
		result[d.ID] = Value{
			DisplayName: d.DisplayName,
			Value:       v,
			Unit:        Unit,
		}
	}
	return result, nil
}

// lookup holds per-division account amounts; later duplicates overwrite earlier ones
type lookup map[Division]map[string]string

func newLookup(items []StatementLineItem) lookup {
	l := lookup{
		DivisionBS: make(map[string]string),
		DivisionIS: make(map[string]string),
	}
	for _, item := range items {
		accounts, ok := l[item.Division]
		if !ok {
			continue // CF, SCE 등은 사용하지 않음
		}
		accounts[item.AccountName] = item.CurrentAmount
	}
	return l
}

func (l lookup) amount(ref AccountRef) (float64, bool) {
	raw, ok := l[ref.Division][ref.Account]
	if !ok {
		return 0, false
	}
	return parseAmount(raw)
}

func evaluate(d Definition, accounts lookup) (float64, bool) {
	num, ok := accounts.amount(d.Numerator)
	if !ok {
		return 0, false
	}
	den, ok := accounts.amount(d.Denominator)
	if !ok || den == 0 {
		return 0, false
	}

	return round2(num / den * 100), true
}

// parseAmount parses grouping-separated text such as "1,234,567" or "-12,345"
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
