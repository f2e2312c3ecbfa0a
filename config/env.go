package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-envparse"
	"github.com/mitchellh/mapstructure"
)

// ApplyEnvOverrides layers KERNEL_*-prefixed entries from environ (in
// NAME=value form, the same shape go-envparse expects from an env file) on
// top of an already-parsed System. Only scalar fields are overridable;
// this exists for host test runs that want to shrink the tick period
// without editing the checked-in configuration file, matching the
// teacher's convention of environment-file overlays for agent config.
func ApplyEnvOverrides(sys *System, environ []string) error {
	raw := strings.Join(environ, "\n")
	vars, err := envparse.Parse(strings.NewReader(raw))
	if err != nil {
		return err
	}

	overrides := map[string]any{}
	const prefix = "KERNEL_"
	for k, v := range vars {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(k, prefix))
		if key == "tick_period" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			overrides["TickPeriod"] = d
			continue
		}
		overrides[key] = v
	}
	if len(overrides) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           sys,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(overrides)
}

// mustAtoi is used only by tests constructing overrides by hand.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
