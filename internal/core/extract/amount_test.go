package extract

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.234,56", 1234.56},
		{"1,234.56", 1234.56},
		{"1234,56", 1234.56},
		{"1234.56", 1234.56},
		{"1,234", 1.234},
		{"1234", 1234.0},
		{" 42.00 ", 42.0},
		{"0,5", 0.5},
		{"10.000,00", 10000.0},
		{"12,3456", 123456.0},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if err != nil {
			t.Errorf("ParseAmount(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseAmountRejectsJunk(t *testing.T) {
	for _, in := range []string{"", "abc", "12..34.", ","} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("ParseAmount(%q) expected error", in)
		}
	}
}
