package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwhitfield/spendlog/internal/money"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "DotSeparator", input: "12.34", want: 1234},
		{name: "CommaSeparator", input: "12,34", want: 1234},
		{name: "Integer", input: "50", want: 5000},
		{name: "ThirdDecimalRounds", input: "12.345", want: 1235},
		{name: "Whitespace", input: "  9.99 ", want: 999},
		{name: "Empty", input: "", wantErr: true},
		{name: "Zero", input: "0", wantErr: true},
		{name: "Negative", input: "-5.00", wantErr: true},
		{name: "Garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseCents(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, money.ErrInvalidAmount)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSignedCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "Plain", input: "42.50", want: 4250},
		{name: "Negative", input: "-588.74", want: -58874},
		{name: "EuropeanThousands", input: "1.234,56", want: 123456},
		{name: "EuropeanNegative", input: "-588,74", want: -58874},
		{name: "Empty", input: "", wantErr: true},
		{name: "Garbage", input: "n/a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseSignedCents(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "12.34", money.FormatCents(1234))
	assert.Equal(t, "0.05", money.FormatCents(5))
	assert.Equal(t, "100.00", money.FormatCents(10000))
}
