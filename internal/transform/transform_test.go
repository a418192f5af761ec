package transform_test

import (
	"errors"
	"math"
	"testing"

	converr "crsconv/internal/errors"
	"crsconv/internal/testutil"
	"crsconv/internal/transform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	engine := testutil.NewFakeEngine()

	tr, err := transform.New(engine, transform.Options{Source: "epsg:2178", Destination: "EPSG:4258", AlwaysXY: true})
	require.NoError(t, err)
	defer tr.Close()

	assert.Equal(t, "ETRS89 / Poland CS2000 zone 7", tr.SourceName())
	assert.Equal(t, "ETRS89", tr.DestinationName())
	assert.Equal(t, transform.KindOther, tr.Kind(transform.Source))
	assert.Equal(t, transform.KindEllipsoidal, tr.Kind(transform.Destination))
	assert.True(t, engine.AlwaysXY)
	assert.Equal(t, transform.Accuracy{Meters: 1, Known: true}, tr.Accuracy())
}

func TestNewInvalidCRS(t *testing.T) {
	tests := []struct {
		name       string
		opts       transform.Options
		identifier string
	}{
		{
			name:       "unknown source",
			opts:       transform.Options{Source: "epsg:999999", Destination: "epsg:4258"},
			identifier: "epsg:999999",
		},
		{
			name:       "unknown destination",
			opts:       transform.Options{Source: "epsg:2178", Destination: "epsg:999999"},
			identifier: "epsg:999999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := testutil.NewFakeEngine()

			tr, err := transform.New(engine, tt.opts)
			require.Error(t, err)
			assert.Nil(t, tr)

			var crsErr *converr.InvalidCRSError
			require.True(t, errors.As(err, &crsErr))
			assert.Equal(t, tt.identifier, crsErr.Subject)
			assert.Equal(t, converr.ExitCRS, converr.ExitCode(err))
			assert.Empty(t, engine.Inputs)
		})
	}
}

func TestTransform(t *testing.T) {
	engine := testutil.NewFakeEngine()
	engine.Func = func(x, y float64) (float64, float64, error) {
		return y, x, nil
	}

	tr, err := transform.New(engine, transform.Options{Source: "epsg:2178", Destination: "epsg:4258"})
	require.NoError(t, err)

	res, err := tr.Transform(21.0122, 52.2297)
	require.NoError(t, err)
	assert.Equal(t, 52.2297, res.X)
	assert.Equal(t, 21.0122, res.Y)
	assert.True(t, res.Accuracy.Known)
	assert.Equal(t, [][2]float64{{21.0122, 52.2297}}, engine.Inputs)
}

func TestTransformFailure(t *testing.T) {
	tests := []struct {
		name string
		fn   func(x, y float64) (float64, float64, error)
	}{
		{
			name: "engine error",
			fn: func(x, y float64) (float64, float64, error) {
				return 0, 0, errors.New("point outside of projection domain")
			},
		},
		{
			name: "infinite output",
			fn: func(x, y float64) (float64, float64, error) {
				return math.Inf(1), math.Inf(1), nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := testutil.NewFakeEngine()
			engine.Func = tt.fn

			tr, err := transform.New(engine, transform.Options{Source: "epsg:2178", Destination: "epsg:4258"})
			require.NoError(t, err)

			_, err = tr.Transform(1, 2)
			require.Error(t, err)

			var transformErr *converr.TransformError
			assert.True(t, errors.As(err, &transformErr))
			assert.Equal(t, converr.ExitTransform, converr.ExitCode(err))
		})
	}
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, "unknown", transform.NewAccuracy(-1).String())
	assert.Equal(t, "unknown", transform.NewAccuracy(math.NaN()).String())
	assert.Equal(t, "1.0", transform.NewAccuracy(1).String())
	assert.Equal(t, "0.05", transform.NewAccuracy(0.05).String())
	assert.Equal(t, "0.0", transform.NewAccuracy(0).String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ellipsoidal", transform.KindEllipsoidal.String())
	assert.Equal(t, "other", transform.KindOther.String())
}

func TestFormatNatural(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0.0"},
		{in: math.Copysign(0, -1), want: "-0.0"},
		{in: 5, want: "5.0"},
		{in: 21.0122, want: "21.0122"},
		{in: -52.2297, want: "-52.2297"},
		{in: 5788521.123456789, want: "5788521.123456789"},
		{in: 0.30000000000000004, want: "0.30000000000000004"},
		{in: 0.0001, want: "0.0001"},
		{in: 0.00001, want: "1e-05"},
		{in: 1e16, want: "1e+16"},
		{in: 123456789012345.0, want: "123456789012345.0"},
		{in: math.Inf(1), want: "inf"},
		{in: math.Inf(-1), want: "-inf"},
		{in: math.NaN(), want: "nan"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, transform.FormatNatural(tt.in))
		})
	}
}
