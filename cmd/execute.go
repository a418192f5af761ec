// Package cmd implements the command-line interface of crsconv: flag
// parsing, configuration and the single conversion it runs per invocation.
package cmd

import (
	"io"

	"crsconv/internal/config"
	"crsconv/internal/report"
	"crsconv/internal/transform"

	"github.com/rs/zerolog/log"
)

func executeTransform(cfg *config.Config, engine transform.Engine, out io.Writer) error {
	tr, err := transform.New(engine, transform.Options{
		Source:      cfg.Source,
		Destination: cfg.Destination,
		AlwaysXY:    cfg.AlwaysXY,
	})
	if err != nil {
		engine.Close()
		return err
	}
	defer tr.Close()

	log.Info().
		Str("src", tr.SourceName()).
		Str("dst", tr.DestinationName()).
		Stringer("dst_kind", tr.Kind(transform.Destination)).
		Bool("always_xy", cfg.AlwaysXY).
		Msg("Resolved CRS")

	x, err := parseToken("x", cfg.X)
	if err != nil {
		return err
	}
	y, err := parseToken("y", cfg.Y)
	if err != nil {
		return err
	}

	res, err := tr.Transform(x, y)
	if err != nil {
		return err
	}

	log.Debug().
		Float64("x", res.X).
		Float64("y", res.Y).
		Stringer("accuracy", res.Accuracy).
		Msg("Transformed")

	if cfg.DestinationDMS && tr.Kind(transform.Destination) != transform.KindEllipsoidal {
		log.Info().Str("dst", tr.DestinationName()).Msg("Destination is not ellipsoidal, ignoring --dst-dms")
	}

	r, err := report.New(tr, res, cfg.DestinationDMS)
	if err != nil {
		return err
	}
	return r.Write(out, cfg.Format)
}

func parseToken(axis, token string) (float64, error) {
	v, err := transform.ParseCoordinate(token)
	if err != nil {
		return 0, err
	}

	log.Debug().
		Str("axis", axis).
		Str("token", token).
		Bool("dms", transform.IsDMS(token)).
		Float64("value", v).
		Msg("Parsed coordinate")

	return v, nil
}
