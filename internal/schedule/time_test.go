package schedule

import "testing"

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name    string
		minutes float64
		want    string
	}{
		{"midnight", 0, "00:00"},
		{"six in the morning", 360, "06:00"},
		{"fractional minutes floor", 383.571, "06:23"},
		{"just before the hour", 59.9, "00:59"},
		{"on the hour", 60, "01:00"},
		{"negative clamps to midnight", -5, "00:00"},
		{"after noon", 750, "12:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMinutes(tt.minutes); got != tt.want {
				t.Errorf("FormatMinutes(%f) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestParseHHMM(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"midnight", "00:00", 0, false},
		{"morning", "06:00", 360, false},
		{"afternoon", "12:30", 750, false},
		{"minutes out of range", "10:60", 0, true},
		{"negative minutes", "10:-1", 0, true},
		{"missing colon", "0600", 0, true},
		{"not a number", "ab:cd", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHHMM(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected an error for %q, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHHMM(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHHMM(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 1, 59, 60, 360, 719, 1439} {
		s := FormatMinutes(float64(minutes))
		got, err := ParseHHMM(s)
		if err != nil {
			t.Fatalf("ParseHHMM(%q) failed: %v", s, err)
		}
		if got != minutes {
			t.Errorf("Round trip of %d minutes via %q gave %d", minutes, s, got)
		}
	}
}
