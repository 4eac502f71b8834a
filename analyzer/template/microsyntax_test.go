package template

import "testing"

// TestParseForValue covers the "let <name> of <expr>" microsyntax.
func TestParseForValue(t *testing.T) {
	tests := []struct {
		value     string
		loopVar   string
		exprStart int
		ok        bool
	}{
		{"let item of items", "item", 12, true},
		{"let x of list.items", "x", 9, true},
		{"let  x  of  items", "x", 12, true},
		{"item of items", "", 0, false},
		{"let item in items", "", 0, false},
		{"let of items", "", 0, false},
		{"let item of ", "", 0, false},
		{"", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			loopVar, exprStart, ok := parseForValue(tt.value)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if loopVar != tt.loopVar {
				t.Errorf("loopVar = %q, want %q", loopVar, tt.loopVar)
			}
			if exprStart != tt.exprStart {
				t.Errorf("exprStart = %d, want %d", exprStart, tt.exprStart)
			}
		})
	}
}
