package config

import (
	"errors"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// EnvFile names the config file used when no --config flag is given.
const EnvFile = "SBMATE_CONFIG"

const DefaultFile = "sbmate.yaml"

type Config struct {
	Ontologies Ontologies `yaml:"ontologies"`
	Oracle     Oracle     `yaml:"oracle"`
	Extract    Extract    `yaml:"extract"`
	Output     Output     `yaml:"output"`
	Log        Log        `yaml:"log"`
	// Files scored concurrently
	Workers int `yaml:"workers" example:"4" validate:"gte=1"`
	// Prometheus textfile written after each run
	MetricsFile string `yaml:"metrics_file" example:"/var/lib/node_exporter/sbmate.prom"`
}

type Ontologies struct {
	GO    Ontology `yaml:"go" validate:"required"`
	SBO   Ontology `yaml:"sbo" validate:"required"`
	ChEBI Ontology `yaml:"chebi" validate:"required"`
}

type Ontology struct {
	// OBO, OWL or JSON snapshot file
	Path string `yaml:"path" example:"data/go-basic.obo" validate:"required"`
	// auto detects from the extension
	Format string `yaml:"format" example:"obo" validate:"omitempty,oneof=auto obo owl json"`
	// Relationship types followed towards the roots
	Relations []string `yaml:"relations" example:"[is_a, part_of]"`
}

type Oracle struct {
	KEGGURL    string `yaml:"kegg_url" example:"https://www.genome.jp/entry" validate:"required,url"`
	UniProtURL string `yaml:"uniprot_url" example:"https://rest.uniprot.org/uniprotkb" validate:"required,url"`
	// Per-request timeout, 0 disables it
	Timeout   time.Duration `yaml:"timeout" example:"30s" validate:"gte=0"`
	UserAgent string        `yaml:"user_agent" example:"sbmate/1.0"`
}

type Extract struct {
	// Biology qualifiers whose references count as annotations
	Qualifiers []string `yaml:"qualifiers" example:"[is, isVersionOf]" validate:"required,min=1,dive,required"`
}

type Output struct {
	Format string `yaml:"format" example:"report" validate:"oneof=report table csv json"`
}

type Log struct {
	Level string `yaml:"level" example:"info" validate:"oneof=debug info warn warning error"`
	// Optional JSON log file written next to the console output
	File string `yaml:"file" example:"sbmate.log"`
}

func Default() *Config {
	return &Config{
		Ontologies: Ontologies{
			GO:    Ontology{Path: "data/go-basic.obo", Format: "auto"},
			SBO:   Ontology{Path: "data/SBO_OBO.obo", Format: "auto"},
			ChEBI: Ontology{Path: "data/chebi_lite.obo", Format: "auto"},
		},
		Oracle: Oracle{
			KEGGURL:    "https://www.genome.jp/entry",
			UniProtURL: "https://rest.uniprot.org/uniprotkb",
		},
		Extract: Extract{Qualifiers: []string{"is", "isVersionOf"}},
		Output:  Output{Format: "report"},
		Log:     Log{Level: "info"},
		Workers: 1,
	}
}

// Load reads path, or the file named by SBMATE_CONFIG, or sbmate.yaml. A
// missing default file is not an error; defaults are used.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvFile)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultFile
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg = Default()
			return cfg, cfg.Validate()
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile overlays the YAML file at path on the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.In("config").With("path", path).Wrapf(err, "failed to read config file")
	}

	result := Default()
	if err = yaml.Unmarshal(data, result); err != nil {
		return nil, oops.In("config").With("path", path).Wrapf(err, "failed to parse YAML config")
	}

	if err = result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return oops.In("config").Code("invalid_config").Wrapf(err, "failed to validate config")
	}
	return nil
}
