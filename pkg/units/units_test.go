package units

import "testing"

func TestFor(t *testing.T) {
	if got := For(true).LengthUnit; got != "m" {
		t.Errorf("expected metric length unit m, got %s", got)
	}
	if got := For(false).LengthUnit; got != "ft" {
		t.Errorf("expected imperial length unit ft, got %s", got)
	}
	if For(true).System() != "metric" || For(false).System() != "imperial" {
		t.Errorf("unexpected system names %s/%s", For(true).System(), For(false).System())
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		key    string
		dict   Dict
		want   string
		wantOK bool
	}{
		{"lengthUnit", Imperial, "ft", true},
		{"dischargeUnit", Metric, "cms", true},
		{"velocityUnit", Imperial, "ft/s", true},
		{"colorOfTheSky", Metric, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := tt.dict.Label(tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Label(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
