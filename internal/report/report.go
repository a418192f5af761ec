// Package report renders the outcome of a conversion: the status line that
// names both CRS with the accuracy estimate, and the transformed coordinates
// formatted for the kind of the destination coordinate system.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"crsconv/internal/config"
	"crsconv/internal/dms"
	"crsconv/internal/transform"

	"gopkg.in/yaml.v3"
)

// Report is a rendered conversion. X and Y are already formatted.
type Report struct {
	Source          string   `json:"source" yaml:"source"`
	Destination     string   `json:"destination" yaml:"destination"`
	Accuracy        *float64 `json:"accuracy" yaml:"accuracy"`
	DestinationKind string   `json:"destination_kind" yaml:"destination_kind"`
	X               string   `json:"x" yaml:"x"`
	Y               string   `json:"y" yaml:"y"`

	accuracy transform.Accuracy
}

// Metadata is the part of a transformer a report needs.
type Metadata interface {
	SourceName() string
	DestinationName() string
	Kind(side transform.Side) transform.Kind
}

// New builds the report for res. wantDMS only has an effect when the
// destination coordinate system is ellipsoidal.
func New(meta Metadata, res transform.Result, wantDMS bool) (*Report, error) {
	kind := meta.Kind(transform.Destination)

	x, y, err := FormatCoordinates(kind, wantDMS, res.X, res.Y)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Source:          meta.SourceName(),
		Destination:     meta.DestinationName(),
		DestinationKind: kind.String(),
		X:               x,
		Y:               y,
		accuracy:        res.Accuracy,
	}
	if res.Accuracy.Known {
		meters := res.Accuracy.Meters
		r.Accuracy = &meters
	}
	return r, nil
}

// FormatCoordinates formats a transformed pair:
//   - ellipsoidal destination with DMS requested: D°M'S'' notation,
//   - ellipsoidal destination otherwise: exactly ten decimal places,
//   - any other destination: the natural representation, DMS or not.
func FormatCoordinates(kind transform.Kind, wantDMS bool, x, y float64) (string, string, error) {
	if kind != transform.KindEllipsoidal {
		return transform.FormatNatural(x), transform.FormatNatural(y), nil
	}

	if !wantDMS {
		return fmt.Sprintf("%.10f", x), fmt.Sprintf("%.10f", y), nil
	}

	dx, err := dms.FromDecimal(x)
	if err != nil {
		return "", "", err
	}
	dy, err := dms.FromDecimal(y)
	if err != nil {
		return "", "", err
	}
	return dms.Format(dx), dms.Format(dy), nil
}

// StatusLine is the first line of the text output.
func (r *Report) StatusLine() string {
	return fmt.Sprintf("Transforming from \"%s\" to \"%s\" with accuracy of %s", r.Source, r.Destination, r.accuracy)
}

// CoordinatesLine is the second line of the text output.
func (r *Report) CoordinatesLine() string {
	return fmt.Sprintf("Coordinates: %s, %s", r.X, r.Y)
}

// Write renders the report to w in the given format.
func (r *Report) Write(w io.Writer, format config.OutputFormat) error {
	switch format {
	case config.FormatJSON:
		return r.writeJSON(w)
	case config.FormatYAML:
		return r.writeYAML(w)
	case config.FormatCSV:
		return r.writeCSV(w)
	default:
		return r.writeText(w)
	}
}

func (r *Report) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", r.StatusLine(), r.CoordinatesLine())
	return err
}

func (r *Report) writeJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(r)
}

func (r *Report) writeYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		return err
	}
	return encoder.Close()
}

func (r *Report) writeCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	header := []string{"source", "destination", "accuracy", "destination_kind", "x", "y"}
	if err := writer.Write(header); err != nil {
		return err
	}

	record := []string{r.Source, r.Destination, r.accuracy.String(), r.DestinationKind, r.X, r.Y}
	if err := writer.Write(record); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}
