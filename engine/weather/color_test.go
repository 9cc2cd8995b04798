package weather

import "testing"

// TestParseColor covers the accepted CSS forms
func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"red", Color{R: 1, G: 0, B: 0, A: 1}},
		{"  White ", Color{R: 1, G: 1, B: 1, A: 1}},
		{"#00ff00", Color{R: 0, G: 1, B: 0, A: 1}},
		{"#00F", Color{R: 0, G: 0, B: 1, A: 1}},
		{"rgb(255, 0, 255)", Color{R: 1, G: 0, B: 1, A: 1}},
		{"rgba(0, 0, 0, 0.5)", Color{R: 0, G: 0, B: 0, A: 0.5}},
		{"rgb(300, -5, 0)", Color{R: 1, G: 0, B: 0, A: 1}},
	}
	for _, tc := range cases {
		got, ok := ParseColor(tc.in)
		if !ok {
			t.Errorf("ParseColor(%q) failed", tc.in)
			continue
		}
		if !nearColor(got, tc.want) {
			t.Errorf("ParseColor(%q) = %+v, expected %+v", tc.in, got, tc.want)
		}
	}
}

// TestParseColorInvalid verifies malformed strings are rejected
func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "notacolor", "#12", "#gggggg", "rgb(1,2)", "rgba(1,2,3)", "rgb(a,b,c)"} {
		if _, ok := ParseColor(in); ok {
			t.Errorf("Expected ParseColor(%q) to fail", in)
		}
	}
}

// TestParseColorOr verifies the default fallback
func TestParseColorOr(t *testing.T) {
	def := Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	if got := ParseColorOr("bogus", def); got != def {
		t.Errorf("Expected default for invalid colour, got %+v", got)
	}
	if got := ParseColorOr("", def); got != def {
		t.Errorf("Expected default for empty colour, got %+v", got)
	}
	if got := ParseColorOr("blue", def); got.B != 1 || got.R != 0 {
		t.Errorf("Expected blue, got %+v", got)
	}
}

// TestColorBlend verifies channel-wise interpolation
func TestColorBlend(t *testing.T) {
	a := Color{R: 0, G: 0.5, B: 1, A: 0}
	b := Color{R: 1, G: 0.5, B: 0, A: 2}
	got := a.Blend(b, 0.25)
	want := Color{R: 0.25, G: 0.5, B: 0.75, A: 0.5}
	if !nearColor(got, want) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
