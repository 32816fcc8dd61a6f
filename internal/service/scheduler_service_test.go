package service

import (
	"testing"
	"time"
)

func TestBuildDailySpec(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "07:00", want: "0 0 7 * * *"},
		{in: "23:59", want: "0 59 23 * * *"},
		{in: " 9:05 ", want: "0 5 9 * * *"},
		{in: "24:00", wantErr: true},
		{in: "07:60", wantErr: true},
		{in: "0700", wantErr: true},
		{in: "aa:bb", wantErr: true},
	}
	for _, tc := range cases {
		got, err := buildDailySpec(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("buildDailySpec(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("buildDailySpec(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("buildDailySpec(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestScheduleDailyRegistersEntry(t *testing.T) {
	s := NewSchedulerService(time.UTC, nil)
	id, err := s.ScheduleDaily("07:00", func() {})
	if err != nil {
		t.Fatalf("ScheduleDaily: %v", err)
	}
	s.Start()
	defer s.Stop()

	next := s.Next(id)
	if next.IsZero() || next.Hour() != 7 || next.Minute() != 0 {
		t.Fatalf("next = %v", next)
	}
	if _, err := s.ScheduleDaily("nope", func() {}); err == nil {
		t.Fatal("expected error for bad time")
	}
}
