package analytics

import "testing"

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{12, "12s"},
		{59, "59s"},
		{60, "1m 0s"},
		{312, "5m 12s"},
		{3599, "59m 59s"},
		{3600, "1h 0m"},
		{7500, "2h 5m"},
		{86400, "24h 0m"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
