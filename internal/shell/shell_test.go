package shell

import (
	"errors"
	"strings"
	"testing"

	"github.com/qualityline/qualityline/internal/quality"
)

func TestParsePositiveFloat(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"100", 100, false},
		{" 99.5 ", 99.5, false},
		{"0.1", 0.1, false},
		{"", 0, true},
		{"   ", 0, true},
		{"abc", 0, true},
		{"12abc", 0, true},
		{"0", 0, true},
		{"-5", 0, true},
	}

	for _, tt := range tests {
		v, err := parsePositiveFloat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePositiveFloat(%q): expected error, got %v", tt.in, v)
			} else if !errors.Is(err, ErrInputInvalid) {
				t.Errorf("parsePositiveFloat(%q): error %v is not ErrInputInvalid", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePositiveFloat(%q): %v", tt.in, err)
			continue
		}
		if v != tt.want {
			t.Errorf("parsePositiveFloat(%q): got %v, want %v", tt.in, v, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	if _, err := parseColor("  "); !errors.Is(err, ErrInputInvalid) {
		t.Errorf("empty color: got %v, want ErrInputInvalid", err)
	}
	c, err := parseColor(" Blue ")
	if err != nil || c != "Blue" {
		t.Errorf("parseColor: got (%q, %v)", c, err)
	}
}

func TestSequentialGenerator(t *testing.T) {
	g := NewIDGenerator("sequential")

	want := []string{"P0001", "P0002", "P0003"}
	for i, w := range want {
		if got := g.Next(); got != w {
			t.Errorf("Next() call %d: got %q, want %q", i+1, got, w)
		}
	}
}

func TestUUIDGenerator(t *testing.T) {
	g := NewIDGenerator("uuid")

	a, b := g.Next(), g.Next()
	if a == b {
		t.Errorf("uuid generator repeated an ID: %q", a)
	}
	if len(a) != 36 || strings.Count(a, "-") != 4 {
		t.Errorf("unexpected uuid shape: %q", a)
	}
}

func TestReasonText_CoversAllReasons(t *testing.T) {
	for _, r := range quality.AllReasons {
		if reasonText(r) == string(r) {
			t.Errorf("reasonText(%s): no operator-facing wording", r)
		}
	}
}
