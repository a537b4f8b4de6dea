package models

import "testing"

func TestTimeRangeWindow(t *testing.T) {
	cases := []struct {
		r    TimeRange
		want HistoryWindow
		ok   bool
	}{
		{Range24h, HistoryWindow{Results: 144, Days: 1}, true},
		{Range7d, HistoryWindow{Results: 500, Days: 7}, true},
		{Range30d, HistoryWindow{Results: 1000, Days: 30}, true},
		{"1y", HistoryWindow{}, false},
		{"", HistoryWindow{}, false},
	}
	for _, tc := range cases {
		got, ok := tc.r.Window()
		if ok != tc.ok || got != tc.want {
			t.Errorf("%q.Window() = %+v, %v; want %+v, %v", tc.r, got, ok, tc.want, tc.ok)
		}
	}
}
