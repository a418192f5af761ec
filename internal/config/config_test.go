package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	converr "crsconv/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "valid config",
			config: Config{
				X:           "21.0122",
				Y:           "52.2297",
				Source:      DefaultSource,
				Destination: DefaultDestination,
			},
		},
		{
			name: "missing y",
			config: Config{
				X:           "21.0122",
				Source:      DefaultSource,
				Destination: DefaultDestination,
			},
			expectError: true,
		},
		{
			name: "blank source",
			config: Config{
				X:           "21.0122",
				Y:           "52.2297",
				Source:      "   ",
				Destination: DefaultDestination,
			},
			expectError: true,
		},
		{
			name: "missing destination",
			config: Config{
				X:      "21.0122",
				Y:      "52.2297",
				Source: DefaultSource,
			},
			expectError: true,
		},
		{
			name: "unknown format",
			config: Config{
				X:           "21.0122",
				Y:           "52.2297",
				Source:      DefaultSource,
				Destination: DefaultDestination,
				Format:      "xml",
			},
			expectError: true,
		},
		{
			name: "yaml format",
			config: Config{
				X:           "21.0122",
				Y:           "52.2297",
				Source:      DefaultSource,
				Destination: DefaultDestination,
				Format:      FormatYAML,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				require.Error(t, err)
				var cfgErr *converr.ConfigError
				assert.True(t, errors.As(err, &cfgErr))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateTrimsOnlyCRS(t *testing.T) {
	cfg := Config{X: " 21.0122 ", Y: "52.2297\n", Source: " epsg:2178", Destination: "epsg:4258 "}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, " 21.0122 ", cfg.X)
	assert.Equal(t, "52.2297\n", cfg.Y)
	assert.Equal(t, "epsg:2178", cfg.Source)
	assert.Equal(t, "epsg:4258", cfg.Destination)
	assert.Equal(t, FormatText, cfg.Format)
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "text, json, yaml, csv", FormatList())
	assert.True(t, FormatCSV.Valid())
	assert.False(t, OutputFormat("TEXT").Valid())
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crsconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "src: epsg:2180\ndst: epsg:4326\ndst_dms: true\nformat: json\n")

	f, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, f.Source)
	assert.Equal(t, "epsg:2180", *f.Source)
	require.NotNil(t, f.Destination)
	assert.Equal(t, "epsg:4326", *f.Destination)
	require.NotNil(t, f.DestinationDMS)
	assert.True(t, *f.DestinationDMS)
	assert.Nil(t, f.AlwaysXY)
	require.NotNil(t, f.Format)
	assert.Equal(t, FormatJSON, *f.Format)
}

func TestLoadEmpty(t *testing.T) {
	f, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, &File{}, f)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
		},
		{
			name: "unknown key",
			path: func(t *testing.T) string { return writeFile(t, "source: epsg:2180\n") },
		},
		{
			name: "wrong type",
			path: func(t *testing.T) string { return writeFile(t, "dst_dms: [1, 2]\n") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)
			_, err := Load(path)
			require.Error(t, err)

			var cfgErr *converr.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, path, cfgErr.Subject)
		})
	}
}

func TestApply(t *testing.T) {
	src := "epsg:2180"
	dst := "epsg:4326"
	dms := true
	xy := true
	format := FormatYAML
	f := &File{Source: &src, Destination: &dst, DestinationDMS: &dms, AlwaysXY: &xy, Format: &format}

	cfg := Config{Source: DefaultSource, Destination: DefaultDestination}
	cfg.Apply(f, func(string) bool { return false })

	assert.Equal(t, "epsg:2180", cfg.Source)
	assert.Equal(t, "epsg:4326", cfg.Destination)
	assert.True(t, cfg.DestinationDMS)
	assert.True(t, cfg.AlwaysXY)
	assert.Equal(t, FormatYAML, cfg.Format)

	cfg = Config{Source: "epsg:2176", Destination: DefaultDestination}
	cfg.Apply(f, func(option string) bool { return option == OptSource || option == OptDestinationDMS })

	assert.Equal(t, "epsg:2176", cfg.Source)
	assert.Equal(t, "epsg:4326", cfg.Destination)
	assert.False(t, cfg.DestinationDMS)

	cfg.Apply(nil, func(string) bool { return false })
	assert.Equal(t, "epsg:2176", cfg.Source)
}
