// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package main

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/pflag"
	goyaml "gopkg.in/yaml.v3"
)

// config is the shape of an optional jslt.yaml. It doubles as the source
// struct for the generated JSON Schema that validates the file before it is
// applied.
type config struct {
	MaxDepth  int      `koanf:"max_depth" yaml:"max_depth" json:"max_depth,omitempty" jsonschema:"minimum=1,default=256"`
	Functions []string `koanf:"functions" yaml:"functions" json:"functions,omitempty" jsonschema:"description=allow-list of builtin function names"`
}

func defaultConfig() config {
	return config{
		MaxDepth:  256,
		Functions: []string{"size", "string", "number", "boolean", "round"},
	}
}

// loadConfig merges an optional config file with command-line flag
// overrides on top of defaultConfig: the file layer (if present) and the
// flag layer are applied through koanf, then unmarshaled onto a struct that
// already carries the defaults, so keys absent from both layers keep their
// default value.
func loadConfig(path string, flags *pflag.FlagSet) (config, error) {
	out := defaultConfig()
	k := koanf.New(".")

	if path != "" {
		data, err := readConfigFile(path)
		if err != nil {
			return config{}, err
		}
		if err := validateConfigSchema(data); err != nil {
			return config{}, fmt.Errorf("jslt: config %s failed schema validation: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return config{}, fmt.Errorf("jslt: load config file %s: %w", path, err)
		}
	}
	fileMaxDepth := k.Int("max_depth")

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return config{}, fmt.Errorf("jslt: load flag overrides: %w", err)
		}
	}

	if err := k.Unmarshal("", &out); err != nil {
		return config{}, fmt.Errorf("jslt: unmarshal config: %w", err)
	}
	// A max_depth of 0 (the flag's unset value) defers to the file, then the default.
	if out.MaxDepth == 0 {
		out.MaxDepth = fileMaxDepth
		if out.MaxDepth == 0 {
			out.MaxDepth = defaultConfig().MaxDepth
		}
	}
	return out, nil
}

func readConfigFile(path string) ([]byte, error) {
	data, err := file.Provider(path).ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("jslt: read config file %s: %w", path, err)
	}
	return data, nil
}

// configSchemaState holds the compiled config schema and a sync.Once for
// thread-safe lazy compilation.
type configSchemaState struct {
	once   sync.Once
	schema *jschema.Schema
	err    error
}

var globalConfigSchemaState = &configSchemaState{}

func compiledConfigSchema() (*jschema.Schema, error) {
	globalConfigSchemaState.once.Do(func() {
		globalConfigSchemaState.schema, globalConfigSchemaState.err = compileConfigSchema()
	})
	return globalConfigSchemaState.schema, globalConfigSchemaState.err
}

func generateConfigSchema() ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(&config{})
	schema.Title = "jslt CLI configuration"
	schema.Description = "Schema for jslt.yaml configuration files"
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jslt: marshal config schema: %w", err)
	}
	return append(data, '\n'), nil
}

func compileConfigSchema() (*jschema.Schema, error) {
	schemaBytes, err := generateConfigSchema()
	if err != nil {
		return nil, err
	}
	var schemaData any
	if err := json.Unmarshal(schemaBytes, &schemaData); err != nil {
		return nil, fmt.Errorf("jslt: parse config schema: %w", err)
	}
	c := jschema.NewCompiler()
	if err := c.AddResource("jslt-config.json", schemaData); err != nil {
		return nil, fmt.Errorf("jslt: register config schema resource: %w", err)
	}
	sch, err := c.Compile("jslt-config.json")
	if err != nil {
		return nil, fmt.Errorf("jslt: compile config schema: %w", err)
	}
	return sch, nil
}

func validateConfigSchema(yamlData []byte) error {
	var parsed any
	if err := goyaml.Unmarshal(yamlData, &parsed); err != nil {
		return fmt.Errorf("jslt: parse config YAML: %w", err)
	}
	jsonCompatible := toJSONCompatible(parsed)

	sch, err := compiledConfigSchema()
	if err != nil {
		return fmt.Errorf("jslt: compile config schema: %w", err)
	}
	if err := sch.Validate(jsonCompatible); err != nil {
		return err
	}
	return nil
}

// toJSONCompatible converts YAML's map[string]any / []any tree into the
// plain JSON-compatible shape the schema validator expects.
func toJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, v := range val {
			out[k] = toJSONCompatible(v)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, v := range val {
			out[i] = toJSONCompatible(v)
		}
		return out
	default:
		return val
	}
}
