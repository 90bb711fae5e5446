package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"

	"github.com/icarus-vfx/icshared/pkg/platform"
)

// parserFor picks a koanf parser from a file extension. JSON is the
// pipeline's historical format and the fallback for unknown extensions.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser()
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return json.Parser()
	}
}

// unmarshal decodes the whole koanf tree into out using the shared decoder
// settings.
func unmarshal(k *koanf.Koanf, out interface{}) error {
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           out,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToOSHookFunc(),
				secondsToDurationHookFunc(),
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	return k.UnmarshalWithConf("", out, unmarshalConf)
}

// stringToOSHookFunc parses OS identifiers ("win", "mac", "linux").
func stringToOSHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(platform.OS("")) {
			return data, nil
		}
		return platform.Parse(data.(string))
	}
}

// secondsToDurationHookFunc accepts bare numbers as seconds, which is how
// IC_NOTIFICATIONS_TIMEOUT has always been written.
func secondsToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case int:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return time.Duration(n) * time.Second, nil
			}
		}
		return data, nil
	}
}

// loadInto is a small helper wrapping koanf.Load with a contextual error.
func loadInto(k *koanf.Koanf, p koanf.Provider, pa koanf.Parser, what string) error {
	if err := k.Load(p, pa); err != nil {
		return fmt.Errorf("failed to load %s: %w", what, err)
	}
	return nil
}
