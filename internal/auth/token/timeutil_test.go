package token

import (
	"testing"
	"time"
)

func TestCoerceUTC(t *testing.T) {
	want := time.Date(2026, 7, 4, 10, 30, 0, 0, time.UTC)
	native := want.In(time.FixedZone("EST", -5*60*60))

	tests := []struct {
		name string
		in   interface{}
		want *time.Time
	}{
		{name: "native", in: native, want: &want},
		{name: "native pointer", in: &native, want: &want},
		{name: "zulu string", in: "2026-07-04T10:30:00Z", want: &want},
		{name: "offset string", in: "2026-07-04T12:30:00+02:00", want: &want},
		{name: "naive string is utc", in: "2026-07-04T10:30:00", want: &want},
		{name: "naive with fraction", in: "2026-07-04T10:30:00.000000", want: &want},
		{name: "space separated", in: "2026-07-04 10:30:00", want: &want},
		{name: "garbage", in: "next tuesday", want: nil},
		{name: "empty", in: "", want: nil},
		{name: "number", in: 1720089000, want: nil},
		{name: "nil", in: nil, want: nil},
		{name: "zero time", in: time.Time{}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceUTC(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %s", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %s, got nil", tt.want)
			}
			if !got.Equal(*tt.want) || got.Location() != time.UTC {
				t.Fatalf("got %s, want %s in UTC", got, tt.want)
			}
		})
	}
}
