package recent

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type codec interface {
	decode(data []byte) (map[string][]string, error)
	encode(lists map[string][]string) ([]byte, error)
}

func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return tomlCodec{}
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return jsonCodec{}
	}
}

type jsonCodec struct{}

func (jsonCodec) decode(data []byte) (map[string][]string, error) {
	raw, err := json.Parser().Unmarshal(data)
	if err != nil {
		return nil, err
	}
	lists := make(map[string][]string, len(raw))
	for key, value := range raw {
		items, ok := value.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%q is not a list", key)
		}
		list := make([]string, 0, len(items))
		for _, item := range items {
			list = append(list, fmt.Sprint(item))
		}
		lists[key] = list
	}
	return lists, nil
}

func (jsonCodec) encode(lists map[string][]string) ([]byte, error) {
	raw := make(map[string]interface{}, len(lists))
	for key, list := range lists {
		raw[key] = list
	}
	return json.Parser().Marshal(raw)
}

type tomlCodec struct{}

func (tomlCodec) decode(data []byte) (map[string][]string, error) {
	lists := map[string][]string{}
	if err := toml.Unmarshal(data, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (tomlCodec) encode(lists map[string][]string) ([]byte, error) {
	return toml.Marshal(lists)
}

type yamlCodec struct{}

func (yamlCodec) decode(data []byte) (map[string][]string, error) {
	lists := map[string][]string{}
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (yamlCodec) encode(lists map[string][]string) ([]byte, error) {
	return yaml.Marshal(lists)
}
