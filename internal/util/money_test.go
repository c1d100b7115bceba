package util

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain integer", input: "100", want: "100"},
		{name: "plain decimal", input: "100.00", want: "100"},
		{name: "decimal comma", input: "50,00", want: "50"},
		{name: "thousands and comma", input: "1.234,56", want: "1234.56"},
		{name: "thousands dot only", input: "1.000", want: "1000"},
		{name: "nbsp and spaces", input: "\u00A0 89,90 ", want: "89.9"},
		{name: "currency prefix", input: "R$ 12,5", want: "12.5"},
		{name: "garbage", input: "n/d", want: "0"},
		{name: "empty", input: "", want: "0"},
		{name: "negative", input: "-10", want: "0"},
		{name: "nan", input: "nan", want: "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseMoney(tc.input, decimal.Zero)
			want := decimal.RequireFromString(tc.want)
			if !got.Equal(want) {
				t.Fatalf("got %v want %v", got, want)
			}
		})
	}
}

func TestParseMoneyFallback(t *testing.T) {
	fallback := decimal.NewFromInt(2)
	if got := ParseMoney("abc", fallback); !got.Equal(fallback) {
		t.Fatalf("got %v want %v", got, fallback)
	}
	if _, ok := ParseMoneyOK("abc"); ok {
		t.Fatal("expected ok=false")
	}
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "R$ 0,00",
		"200":      "R$ 200,00",
		"1234.5":   "R$ 1.234,50",
		"1000000":  "R$ 1.000.000,00",
		"99.999":   "R$ 100,00",
		"-1234.56": "R$ -1.234,56",
	}
	for in, want := range cases {
		if got := FormatMoney(decimal.RequireFromString(in)); got != want {
			t.Fatalf("FormatMoney(%s) got %q want %q", in, got, want)
		}
	}
}

func TestNumericCell(t *testing.T) {
	cases := map[string]string{
		"1.875":  "1,875",
		"12.345": "12,345",
		"100":    "100",
		"1.2E-3": "0,0012",
		"Merlot": "Merlot",
	}
	for in, want := range cases {
		if got := NumericCell(in); got != want {
			t.Fatalf("NumericCell(%s) got %q want %q", in, got, want)
		}
	}
	for _, in := range []string{"1.875", "12.345", "1234.5"} {
		v := decimal.RequireFromString(in)
		if got := ParseMoney(PlainDecimal(v), decimal.Zero); !got.Equal(v) {
			t.Fatalf("PlainDecimal(%s) read back as %s", in, got)
		}
	}
}
