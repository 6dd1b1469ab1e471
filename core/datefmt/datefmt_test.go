package datefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/articlepipe/core"
)

func TestFormat(t *testing.T) {
	ts := core.Timestamp{Raw: "2025-01-15", Time: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), Valid: true}

	tests := []struct {
		locale string
		want   string
	}{
		{"zh-CN", "2025年1月15日"},
		{"", "2025年1月15日"},
		{"ja-JP", "2025年1月15日"},
		{"en-US", "January 15, 2025"},
		{"en-GB", "15 January 2025"},
		{"de-DE", "2025-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			f, err := New(tt.locale, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Format(ts))
		})
	}
}

func TestFormat_Invalid(t *testing.T) {
	f, err := New("zh-CN", nil)
	require.NoError(t, err)
	assert.Equal(t, InvalidDate, f.Format(core.Timestamp{Raw: "not a date"}))
	assert.Equal(t, InvalidDate, f.Format(core.Timestamp{}))
}

func TestFormat_TimeZone(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	f, err := New("zh-CN", shanghai)
	require.NoError(t, err)

	ts := core.Timestamp{Time: time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC), Valid: true}
	assert.Equal(t, "2025年1月16日", f.Format(ts))
}

func TestNew_BadLocale(t *testing.T) {
	_, err := New("not_a_locale!!", nil)
	assert.Error(t, err)
}
