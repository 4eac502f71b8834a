package component

import "testing"

// TestDefineRegisters verifies definitions are recorded in registration
// order and that Registered returns a copy.
func TestDefineRegisters(t *testing.T) {
	type Host struct{ Name string }

	before := len(Registered())
	Define(Definition{Host: Host{}, Template: "<p>{{ Name }}</p>"})
	Define(Definition{Host: Host{}, TemplateURL: "./p.html"})

	got := Registered()
	if len(got) != before+2 {
		t.Fatalf("got %d definitions, want %d", len(got), before+2)
	}
	if got[before].Template != "<p>{{ Name }}</p>" {
		t.Errorf("first definition = %+v", got[before])
	}
	if got[before+1].TemplateURL != "./p.html" {
		t.Errorf("second definition = %+v", got[before+1])
	}

	got[before].Template = "mutated"
	if Registered()[before].Template == "mutated" {
		t.Error("Registered returned the backing slice")
	}
}
