// Package config holds the runtime options of crsconv, their validation and
// the optional YAML file that supplies defaults for them.
package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	"crsconv/internal/errors"

	"gopkg.in/yaml.v3"
)

// Default CRS pair: Polish CS2000 zone 7 to ETRS89 geographic.
const (
	DefaultSource      = "epsg:2178"
	DefaultDestination = "epsg:4258"
)

// OutputFormat selects how the result is printed.
type OutputFormat string

// Supported output formats. Text is the two-line human readable output.
const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatCSV  OutputFormat = "csv"
)

// Formats lists the accepted output formats in help order.
var Formats = []OutputFormat{FormatText, FormatJSON, FormatYAML, FormatCSV}

// Config holds all runtime options of a single conversion.
type Config struct {
	X              string
	Y              string
	Source         string
	Destination    string
	DestinationDMS bool
	AlwaysXY       bool
	Format         OutputFormat
	ConfigFile     string
}

// Validate checks the options and normalises them in place.
// CRS identifiers are trimmed; the coordinate tokens are left exactly as
// given so that their grammar decides what is accepted.
func (c *Config) Validate() error {
	c.Source = strings.TrimSpace(c.Source)
	c.Destination = strings.TrimSpace(c.Destination)

	if c.X == "" || c.Y == "" {
		return errors.NewConfigError("both x and y coordinates are required", nil)
	}

	if c.Source == "" {
		return errors.NewConfigError("source CRS must not be empty", nil)
	}

	if c.Destination == "" {
		return errors.NewConfigError("destination CRS must not be empty", nil)
	}

	if c.Format == "" {
		c.Format = FormatText
	}
	if !c.Format.Valid() {
		return errors.NewConfigError("output format must be one of "+FormatList(), nil)
	}

	return nil
}

// Valid reports whether f is a supported output format.
func (f OutputFormat) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// FormatList renders the supported formats as "text, json, yaml, csv".
func FormatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// File is the content of a YAML defaults file. Absent keys leave the
// corresponding option alone.
type File struct {
	Source         *string       `yaml:"src"`
	Destination    *string       `yaml:"dst"`
	DestinationDMS *bool         `yaml:"dst_dms"`
	AlwaysXY       *bool         `yaml:"always_xy"`
	Format         *OutputFormat `yaml:"format"`
}

// Load reads and parses the YAML defaults file at path. Unknown keys are
// rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigErrorWithPath(path, "cannot read config file", err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.NewConfigErrorWithPath(path, "invalid config file", err)
	}

	return &f, nil
}

// Option names used by Apply to ask whether a value was set explicitly.
const (
	OptSource         = "src"
	OptDestination    = "dst"
	OptDestinationDMS = "dst-dms"
	OptAlwaysXY       = "always-xy"
	OptFormat         = "format"
)

// Apply copies the values of f into c, skipping every option for which
// explicit reports true. Explicit options always win over the file.
func (c *Config) Apply(f *File, explicit func(option string) bool) {
	if f == nil {
		return
	}

	if f.Source != nil && !explicit(OptSource) {
		c.Source = *f.Source
	}
	if f.Destination != nil && !explicit(OptDestination) {
		c.Destination = *f.Destination
	}
	if f.DestinationDMS != nil && !explicit(OptDestinationDMS) {
		c.DestinationDMS = *f.DestinationDMS
	}
	if f.AlwaysXY != nil && !explicit(OptAlwaysXY) {
		c.AlwaysXY = *f.AlwaysXY
	}
	if f.Format != nil && !explicit(OptFormat) {
		c.Format = *f.Format
	}
}
