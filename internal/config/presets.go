package config

import "sort"

var Presets = map[string]*Config{
	"default": {
		Links:  2,
		Target: TargetConfig{X: 3, Y: 1},
		Solver: SolverConfig{StepSize: 0.1, MaxIters: 100, Tolerance: 0.1, Delta: 0.01},
	},
	"close": {
		Links:  2,
		Target: TargetConfig{X: 1, Y: 0.5},
		Solver: SolverConfig{StepSize: 0.1, MaxIters: 100, Tolerance: 0.1, Delta: 0.01},
	},
	"far": {
		Links:  3,
		Target: TargetConfig{X: 4, Y: -2},
		Solver: SolverConfig{StepSize: 0.1, MaxIters: 100, Tolerance: 0.1, Delta: 0.01},
	},
	"many": {
		Links:  5,
		Target: TargetConfig{X: 3, Y: 1},
		Solver: SolverConfig{StepSize: 0.1, MaxIters: 100, Tolerance: 0.1, Delta: 0.01},
	},
	"precise": {
		Links:  3,
		Target: TargetConfig{X: 2, Y: 2},
		Solver: SolverConfig{StepSize: 0.05, MaxIters: 500, Tolerance: 0.01, Delta: 0.005},
	},
}

func GetPreset(name string) *Config {
	base, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Links = base.Links
	cfg.Target = base.Target
	cfg.Solver = base.Solver
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
