package itemadapter

import (
	"gopkg.in/yaml.v3"
)

// Config selects the strategies a registry starts with, head to tail.
//
//	strategies: [mapping, record, annotated]
//
// The default order puts the most common shapes first; it is a policy,
// not an invariant, and may be changed freely.
type Config struct {
	Strategies []string `yaml:"strategies"`
}

// DefaultConfig returns the built-in resolution order.
func DefaultConfig() Config {
	return Config{
		Strategies: []string{
			Mapping().Name(),
			Records().Name(),
			Annotated().Name(),
		},
	}
}

// ParseConfig decodes a YAML registry configuration.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, newConfigError(ErrInvalidConfig, "", err)
	}
	if len(cfg.Strategies) == 0 {
		return Config{}, newConfigError(ErrInvalidConfig, "", nil)
	}
	return cfg, nil
}

// NewRegistryFromConfig builds a registry holding the strategies named by cfg,
// in order. Names resolve against the built-in strategies and extra, with
// extra taking precedence on a name clash. A name may appear more than once.
func NewRegistryFromConfig(cfg Config, extra ...Strategy) (*Registry, error) {
	if len(cfg.Strategies) == 0 {
		return nil, newConfigError(ErrInvalidConfig, "", nil)
	}

	available := builtinStrategies()
	for _, s := range extra {
		if s != nil {
			available[s.Name()] = s
		}
	}

	strategies := make([]Strategy, 0, len(cfg.Strategies))
	for _, name := range cfg.Strategies {
		s, ok := available[name]
		if !ok {
			return nil, newConfigError(ErrUnknownStrategy, name, nil)
		}
		strategies = append(strategies, s)
	}

	return NewRegistry(strategies...), nil
}

// builtinStrategies indexes the built-in strategies by name.
func builtinStrategies() map[string]Strategy {
	return map[string]Strategy{
		Mapping().Name():   Mapping(),
		Records().Name():   Records(),
		Annotated().Name(): Annotated(),
	}
}

// defaultStrategies resolves DefaultConfig against the built-ins.
func defaultStrategies() []Strategy {
	builtins := builtinStrategies()
	names := DefaultConfig().Strategies
	out := make([]Strategy, 0, len(names))
	for _, name := range names {
		out = append(out, builtins[name])
	}
	return out
}
