package money

import "testing"

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount int
		want   int64
	}{
		{0, 0},
		{1, 100},
		{50000, 5000000},
		{180000, 18000000},
	}
	for _, tc := range cases {
		if got := ToMinorUnits(tc.amount); got != tc.want {
			t.Fatalf("ToMinorUnits(%d) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestFromMinorUnits(t *testing.T) {
	if got := FromMinorUnits(5000000); got != 50000 {
		t.Fatalf("expected 50000, got %d", got)
	}
	if got := FromMinorUnits(150); got != 1 {
		t.Fatalf("expected truncation to 1, got %d", got)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		amount int
		want   string
	}{
		{0, "NGN 0"},
		{999, "NGN 999"},
		{50000, "NGN 50,000"},
		{1250000, "NGN 1,250,000"},
		{-4500, "NGN -4,500"},
	}
	for _, tc := range cases {
		if got := Format(tc.amount, "NGN"); got != tc.want {
			t.Fatalf("Format(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
