// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the analyzer's frozen, immutable configuration
// record. The analyzer never mutates a Config; callers load one,
// optionally layer an override file over the defaults, and pass it down
// for the lifetime of one analysis.
package config

import (
	"os"

	"github.com/spf13/cast"
	yaml "gopkg.in/yaml.v2"
)

// Config is the frozen set of options the analyzer consults. It is
// intentionally small: everything else about the session (user, current
// schema version, transaction state, ...) belongs to the session layer
// this module treats as an external collaborator.
type Config struct {
	// CaseSensitiveAnalysis governs identifier matching throughout
	// resolution (sql.Resolver).
	CaseSensitiveAnalysis bool `yaml:"caseSensitiveAnalysis"`
	// OrderByOrdinal enables positional ORDER BY (`ORDER BY 1`).
	OrderByOrdinal bool `yaml:"orderByOrdinal"`
	// GroupByOrdinal enables positional GROUP BY (`GROUP BY 1`).
	GroupByOrdinal bool `yaml:"groupByOrdinal"`
	// RunSQLOnFile is loaded and carried, but no analyzer rule reads it:
	// relation resolution behaves the same whether it is set or not.
	RunSQLOnFile bool `yaml:"runSQLonFile"`
	// OptimizerMaxIterations bounds every FixedPoint batch.
	OptimizerMaxIterations int `yaml:"optimizerMaxIterations"`
}

// Default returns the engine's documented defaults.
func Default() Config {
	return Config{
		CaseSensitiveAnalysis:  false,
		OrderByOrdinal:         true,
		GroupByOrdinal:         true,
		RunSQLOnFile:           false,
		OptimizerMaxIterations: 100,
	}
}

// Load reads a YAML config file and overlays it onto Default(). A missing
// file is not an error: callers get the defaults back. A malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// OverlayEnv lets an environment-overlay map (e.g. parsed from a
// process's environment block) override numeric/boolean fields given as
// untyped strings, using spf13/cast for the coercion.
func (c Config) OverlayEnv(env map[string]string) (Config, error) {
	if v, ok := env["OPTIMIZER_MAX_ITERATIONS"]; ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return Config{}, err
		}
		c.OptimizerMaxIterations = n
	}
	if v, ok := env["CASE_SENSITIVE_ANALYSIS"]; ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return Config{}, err
		}
		c.CaseSensitiveAnalysis = b
	}
	return c, nil
}
