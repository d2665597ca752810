// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the optional YAML file that supplies default
// settings to the benchmark commands. Flags given on the command line
// take precedence over the file.
//
// A complete file looks like:
//
//	log:
//	  time_key: time
//	  extra: false
//	speedup:
//	  metric: time
//	  keys: [size, kernel, lmul, unroll]
//	  output: result_speedup.csv
//	  defaults:
//	    lmul: 1
//	    unroll: 1
//	check:
//	  abs_tol: 1e-5
//	  rel_tol: 1e-5
//	  tile: 10
//	chart:
//	  format: png
//	  dpi: 200
//	  width: 10
//	  height: 6
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Log configures benchtables.
type Log struct {
	// TimeKey is the marker key holding the execution time.
	TimeKey string `yaml:"time_key"`

	// Extra writes marker keys beyond the well-known ones.
	Extra bool `yaml:"extra"`
}

// Speedup configures the speedup command.
type Speedup struct {
	Metric   string             `yaml:"metric"`
	Keys     []string           `yaml:"keys"`
	Output   string             `yaml:"output"`
	Defaults map[string]float64 `yaml:"defaults"`
}

// Check configures checkmatmul.
type Check struct {
	AbsTol float64 `yaml:"abs_tol"`
	RelTol float64 `yaml:"rel_tol"`
	Tile   int     `yaml:"tile"`
}

// Chart configures benchplot and speedplot. Width and Height are in
// inches and only apply to speedplot; benchplot sizes each chart
// after its contents.
type Chart struct {
	Format string  `yaml:"format"`
	DPI    int     `yaml:"dpi"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// A Config holds the settings of every command.
type Config struct {
	Log     Log     `yaml:"log"`
	Speedup Speedup `yaml:"speedup"`
	Check   Check   `yaml:"check"`
	Chart   Chart   `yaml:"chart"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Log: Log{TimeKey: "time"},
		Speedup: Speedup{
			Metric:   "time",
			Keys:     []string{"size", "kernel", "lmul", "unroll"},
			Output:   "result_speedup.csv",
			Defaults: map[string]float64{"lmul": 1, "unroll": 1},
		},
		Check: Check{AbsTol: 1e-5, RelTol: 1e-5, Tile: 10},
		Chart: Chart{Format: "png", DPI: 200, Width: 10, Height: 6},
	}
}

// Parse reads a configuration from r on top of the defaults. Unknown
// keys are an error.
func Parse(r io.Reader, name string) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Load reads the configuration file at path. If path is empty, Load
// returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data), path)
}

func (c *Config) validate() error {
	switch {
	case c.Check.AbsTol < 0 || c.Check.RelTol < 0:
		return errors.New("check: tolerances must not be negative")
	case c.Check.Tile < 1:
		return errors.New("check: tile must be at least 1")
	case c.Chart.DPI < 1:
		return errors.New("chart: dpi must be at least 1")
	case c.Chart.Width <= 0 || c.Chart.Height <= 0:
		return errors.New("chart: width and height must be positive")
	}
	return nil
}
