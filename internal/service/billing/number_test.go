package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInvoiceNumber(t *testing.T) {
	issuedAt := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		template string
		seq      int64
		want     string
	}{
		{"default template", DefaultNumberTemplate, 7, "INV-20260824-000007"},
		{"short year", "INV/{YY}{MM}/{SEQ}", 42, "INV/2608/42"},
		{"custom padding", "{YYYY}-{SEQ3}", 5, "2026-005"},
		{"padding overflow keeps digits", "{SEQ3}", 12345, "12345"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FormatInvoiceNumber(tc.template, issuedAt, tc.seq)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatInvoiceNumberErrors(t *testing.T) {
	issuedAt := time.Now()

	_, err := FormatInvoiceNumber("", issuedAt, 1)
	require.Error(t, err)

	_, err = FormatInvoiceNumber(DefaultNumberTemplate, issuedAt, 0)
	require.Error(t, err)

	_, err = FormatInvoiceNumber("INV-{WAT}", issuedAt, 1)
	require.Error(t, err)
}
