package config

// packs.go - Construction of engine inputs from configuration

import (
	"fmt"

	"github.com/kieroneil/ruler/pkg/expose"
	"github.com/kieroneil/ruler/pkg/rules"
	"github.com/kieroneil/ruler/pkg/rules/expr"
	"github.com/kieroneil/ruler/pkg/rules/packs"
)

// BuildPacks constructs the pack list declared by the configuration, in
// declaration order.
func BuildPacks(cfg *Config) ([]rules.Pack, error) {
	out := make([]rules.Pack, 0, len(cfg.Packs))
	for i, pc := range cfg.Packs {
		pack, err := buildPack(pc)
		if err != nil {
			return nil, fmt.Errorf("packs[%d]: %w", i, err)
		}
		out = append(out, pack)
	}
	return out, nil
}

func buildPack(pc PackConfig) (rules.Pack, error) {
	switch {
	case pc.Use != "" && len(pc.Rules) > 0:
		return rules.Pack{}, fmt.Errorf("pack declares both use and rules")
	case pc.Use != "":
		pack, err := packs.Build(pc.Use, pc.With)
		if err != nil {
			return rules.Pack{}, err
		}
		if pc.Name != "" {
			pack.Name = pc.Name
		}
		return pack, nil
	case len(pc.Rules) > 0:
		typ, err := rules.ParsePackType(pc.Type)
		if err != nil {
			return rules.Pack{}, err
		}
		name := pc.Name
		if name == "" {
			name = fmt.Sprintf("%s_rules", typ)
		}
		return expr.Build(name, typ, pc.Rules)
	default:
		return rules.Pack{}, fmt.Errorf("pack declares neither use nor rules")
	}
}

// EngineOptions converts the configured options into Expose options. An
// invalid separator pattern is a fatal configuration error.
func EngineOptions(cfg *Config) ([]expose.Option, error) {
	var opts []expose.Option
	if cfg.Options.RemoveObeyers != nil && !*cfg.Options.RemoveObeyers {
		opts = append(opts, expose.KeepObeyers())
	}
	if cfg.Options.Guess != nil && !*cfg.Options.Guess {
		opts = append(opts, expose.NoGuess())
	}
	if cfg.Options.RuleSep != "" {
		sep, err := rules.NewSeparator(cfg.Options.RuleSep)
		if err != nil {
			return nil, err
		}
		opts = append(opts, expose.RuleSep(sep))
	}
	return opts, nil
}
