// Package config holds the run configuration for a binding-generation run.
package config

// Config is the rust-swig run configuration.
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	Java      JavaConfig      `mapstructure:"java"`
	Log       LogConfig       `mapstructure:"log"`
}

// GeneratorConfig configures the conversion engine.
type GeneratorConfig struct {
	// PointerWidth is the target's pointer width in bits. The rule parser
	// needs it to size isize/usize aliases; the engine core never reads it.
	PointerWidth int `mapstructure:"pointer_width"`

	// StepBudget bounds speculative path building: the maximum number of
	// breadth-expansion rounds, not wall-clock time. 0 means the default.
	StepBudget int `mapstructure:"step_budget"`

	// RuleFiles are conversion-rule batches merged into the engine at
	// startup, in order.
	RuleFiles []string `mapstructure:"rule_files"`
}

// JavaConfig configures the Java/JNI target.
type JavaConfig struct {
	PackageName string `mapstructure:"package_name"`
	OutputDir   string `mapstructure:"output_dir"`
}

// LogConfig configures logging output.
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}

// Defaults
const (
	DefaultPointerWidth = 64
	DefaultStepBudget   = 7
	DefaultPackageName  = "org.example"
)
