package dart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportCode(t *testing.T) {
	code, err := ParseReportCode("")
	require.NoError(t, err)
	assert.Equal(t, ReportAnnual, code)
	assert.Equal(t, "사업보고서", code.Name())

	for _, s := range []string{"11011", "11012", "11013", "11014"} {
		code, err := ParseReportCode(s)
		require.NoError(t, err, s)
		assert.NotEmpty(t, code.Name())
	}

	_, err = ParseReportCode("11015")
	assert.Error(t, err)
}

func TestParseBusinessYear(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "2025", false},
		{"2023", "2023", false},
		{"2026", "2026", false},
		{"2015", "2015", false},
		{"2014", "", true},
		{"2027", "", true},
		{"23", "", true},
		{"20a3", "", true},
		{"+202", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBusinessYear(tt.in, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
