package transcript

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Planner", "Planning"},
		{"Navigator", "Navigating"},
		{"Validator", "Validating"},
		{"System", "System"},
		{"Manager", "Managing"},
		{"Evaluator", "Evaluating"},
		{"User", "User"},
		{"Critic", "Critic"},
		{"planner", "planner"},
		{"", ""},
		{"Planner ", "Planner "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(tt.name); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestLookupProfile(t *testing.T) {
	for _, a := range Actors() {
		p, ok := LookupProfile(a)
		if !ok {
			t.Errorf("LookupProfile(%q) not found", a)
			continue
		}
		if p.Name == "" {
			t.Errorf("LookupProfile(%q) has empty name", a)
		}
	}

	if _, ok := LookupProfile("ghost"); ok {
		t.Error("LookupProfile should not resolve unknown actors")
	}
}
