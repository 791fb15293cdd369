package repository

import "testing"

func TestAsString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{in: `"0195153448"`, want: "0195153448"},
		{in: int32(276725), want: "276725"},
		{in: int64(42), want: "42"},
		{in: float64(7), want: "7"},
		{in: nil, want: ""},
	}
	for _, tt := range tests {
		if got := asString(tt.in); got != tt.want {
			t.Errorf("asString(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestAsRating(t *testing.T) {
	if r := asRating(int32(8)); !r.IsNumeric() {
		t.Error("int32 rating should be numeric")
	}
	if r := asRating(7.5); !r.IsNumeric() {
		t.Error("float rating should be numeric")
	}
	r := asRating(`"9"`)
	if r.IsNumeric() {
		t.Error("text rating should stay raw")
	}
	if v, err := r.Float(); err != nil || v != 9 {
		t.Errorf("expected 9, got %v (%v)", v, err)
	}
	if _, err := asRating(nil).Float(); err == nil {
		t.Error("missing rating should not normalize")
	}
}
