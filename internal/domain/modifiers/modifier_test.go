package modifiers

import "testing"

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "change", want: StrategyTypeChange},
		{name: "func_pm_type_change", want: StrategyTypeChange},
		{name: "remove", want: StrategyTypeRemove},
		{name: "func_pm_type_remove", want: StrategyTypeRemove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod, err := ByName(tt.name, nil)
			if err != nil {
				t.Fatalf("ByName(%q) error = %v", tt.name, err)
			}

			if mod.Name() != tt.want {
				t.Errorf("ByName(%q).Name() = %q, want %q", tt.name, mod.Name(), tt.want)
			}
		})
	}

	if _, err := ByName("flip", nil); err == nil {
		t.Error("ByName(flip) expected an error")
	}
}
