package subject

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		subject string
		want    bool
	}{
		{"exact match", "a.b.c", "a.b.c", true},
		{"single wildcard middle", "a.*.c", "a.b.c", true},
		{"single wildcard middle alt", "a.*.c", "a.x.c", true},
		{"single wildcard too short", "a.*.c", "a.b", false},
		{"single wildcard extra tokens", "a.*.c", "a.b.c.d", false},
		{"terminal wildcard two tokens", "a.>", "a.b", true},
		{"terminal wildcard three tokens", "a.>", "a.b.c", true},
		{"terminal wildcard no remainder", "a.>", "a", false},
		{"trailing single wildcard no extra", "m.*", "m.d1", true},
		{"trailing single wildcard extra", "m.*", "m.d1.d2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(tt.filter, tt.subject, Default)
			if err != nil {
				t.Fatalf("Match(%q, %q) returned error: %v", tt.filter, tt.subject, err)
			}
			if got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.filter, tt.subject, got, tt.want)
			}
		})
	}
}

func TestMatchEmptyInputs(t *testing.T) {
	if _, err := Match("", "a.b", Default); err == nil {
		t.Error("Match with empty filter should return an error")
	}
	if _, err := Match("a.b", "", Default); err == nil {
		t.Error("Match with empty subject should return an error")
	}
}
