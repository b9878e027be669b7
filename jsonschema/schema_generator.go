//go:build generate

// Command schema_generator renders the lqtester config structs into a JSON
// schema, the example YAML config, and the example env file. It is run from
// the config directory by go generate.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	iyaml "github.com/invopop/yaml"
	"github.com/mcuadros/go-defaults"
	"github.com/rs/zerolog/log"
	"github.com/theopenlane/utils/envparse"

	"github.com/GAJENDER439/Low-Quality-Tester/config"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/trust"
)

const (
	// configPackage is the import path the config comments are keyed by
	configPackage = "github.com/GAJENDER439/Low-Quality-Tester/config"
	// fieldTag names config fields in every generated file
	fieldTag = "koanf"
	// skipTag excludes a field from the env file
	skipTag = "-"
	// generatedHeader marks the example files as generated
	generatedHeader = "# Code generated by schema_generator. DO NOT EDIT.\n"
	// ownerReadWrite is the file permission for generated files
	ownerReadWrite = 0600
)

// output is one generated file, relative to the config directory
type output struct {
	path   string
	render func(*config.Config) ([]byte, error)
}

func main() {
	cfg := exampleConfig()

	comments := &jsonschema.Reflector{}
	if err := comments.AddGoComments(configPackage, "."); err != nil {
		log.Fatal().Err(err).Msg("failed to read config comments")
	}

	outputs := []output{
		{path: "../jsonschema/lqtester.config.json", render: func(c *config.Config) ([]byte, error) {
			return renderSchema(c, comments.CommentMap)
		}},
		{path: "config.example.yaml", render: renderYAML},
		{path: ".env.example", render: renderEnv},
	}

	for _, o := range outputs {
		data, err := o.render(cfg)
		if err != nil {
			log.Fatal().Err(err).Str("path", o.path).Msg("failed to render config file")
		}

		if err := os.WriteFile(o.path, data, ownerReadWrite); err != nil {
			log.Fatal().Err(err).Str("path", o.path).Msg("failed to write config file")
		}

		log.Info().Str("path", o.path).Msg("generated")
	}
}

// exampleConfig is the default config with the built-in allowlist spelled out
func exampleConfig() *config.Config {
	cfg := &config.Config{}
	defaults.SetDefaults(cfg)

	cfg.Trust.Domains = trust.DefaultDomains

	return cfg
}

// renderSchema reflects the config into a JSON schema described by the field comments
func renderSchema(cfg *config.Config, comments map[string]string) ([]byte, error) {
	r := jsonschema.Reflector{
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               fieldTag,
		CommentMap:                 comments,
	}

	s := r.Reflect(cfg)
	s.Title = "lqtester configuration"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(data, '\n'), nil
}

// renderYAML writes the config as YAML keyed by the koanf tags
func renderYAML(cfg *config.Config) ([]byte, error) {
	data, err := iyaml.Marshal(yamlValue(reflect.ValueOf(cfg).Elem()))
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return append([]byte(generatedHeader), data...), nil
}

// yamlValue converts config values to plain maps and slices; durations are
// written the way time.ParseDuration reads them
func yamlValue(v reflect.Value) any {
	if v.Type() == reflect.TypeOf(time.Duration(0)) {
		return time.Duration(v.Int()).String()
	}

	switch v.Kind() {
	case reflect.Struct:
		out := make(map[string]any, v.NumField())

		for i := range v.NumField() {
			key := v.Type().Field(i).Tag.Get(fieldTag)
			if key == "" || key == skipTag {
				continue
			}

			out[key] = yamlValue(v.Field(i))
		}

		return out
	case reflect.Slice:
		items := make([]any, v.Len())
		for i := range items {
			items[i] = yamlValue(v.Index(i))
		}

		return items
	default:
		return v.Interface()
	}
}

// renderEnv lists every LQTESTER_ variable with its default; sensitive
// fields are left blank
func renderEnv(cfg *config.Config) ([]byte, error) {
	parser := envparse.Config{
		FieldTagName: fieldTag,
		Skipper:      skipTag,
	}

	vars, err := parser.GatherEnvInfo(strings.TrimSuffix(config.EnvPrefix, "_"), cfg)
	if err != nil {
		return nil, fmt.Errorf("gather env vars: %w", err)
	}

	var b strings.Builder

	b.WriteString(generatedHeader)

	for _, v := range vars {
		if v.Tags.Get("sensitive") == "true" {
			fmt.Fprintf(&b, "# %s is sensitive and should be set securely\n%s=\"\"\n", v.Key, v.Key)
			continue
		}

		value := v.Tags.Get("default")
		if d, err := time.ParseDuration(value); err == nil && v.Type == reflect.TypeOf(time.Duration(0)) {
			value = d.String()
		}

		fmt.Fprintf(&b, "%s=%q\n", v.Key, value)
	}

	return []byte(b.String()), nil
}
