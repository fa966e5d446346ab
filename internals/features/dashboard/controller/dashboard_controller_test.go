package controller

import (
	"reflect"
	"testing"
)

func TestCsvValues(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"cash,qris", []string{"cash", "qris"}},
		{" cash , qris ", []string{"cash", "qris"}},
		{"cash", []string{"cash"}},
		{"", nil},
		{",,", nil},
		{"cash,,qris", []string{"cash", "qris"}},
	}
	for _, tc := range cases {
		if got := csvValues(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("csvValues(%q) = %v, mau %v", tc.in, got, tc.want)
		}
	}
}

func TestBreakdownMap(t *testing.T) {
	got := breakdownMap([]statusCount{
		{Status: "pending", Total: 7},
		{Status: "paid", Total: 3},
		{Status: "failed", Total: 1},
	})
	want := map[string]int64{"pending": 7, "paid": 3, "failed": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("breakdownMap = %v, mau %v", got, want)
	}

	if got := breakdownMap(nil); len(got) != 0 {
		t.Fatalf("breakdownMap(nil) = %v, mau kosong", got)
	}
}
