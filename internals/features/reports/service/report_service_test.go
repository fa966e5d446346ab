package service

import "testing"

func TestSettlementStatus(t *testing.T) {
	cases := []struct {
		billed, paid int64
		want         string
	}{
		{1_800_000, 1_800_000, StatusLunas},
		{1_800_000, 2_000_000, StatusLunas},
		{1_800_000, 150_000, StatusBelum},
		{1_800_000, 0, StatusBelum},
		{0, 0, StatusNone},
		{0, 150_000, StatusNone},
	}
	for _, tc := range cases {
		if got := SettlementStatus(tc.billed, tc.paid); got != tc.want {
			t.Errorf("SettlementStatus(%d, %d) = %q, mau %q", tc.billed, tc.paid, got, tc.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"081234567890":    "6281234567890",
		"0812-3456-7890":  "6281234567890",
		"0812 3456 7890":  "6281234567890",
		"+6281234567890":  "6281234567890",
		"6281234567890":   "6281234567890",
		"":                "",
		"  081234567890 ": "6281234567890",
	}
	for in, want := range cases {
		if got := NormalizePhone(in); got != want {
			t.Errorf("NormalizePhone(%q) = %q, mau %q", in, got, want)
		}
	}
}
