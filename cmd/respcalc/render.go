package main

import (
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"path/filepath"

	"github.com/iris-edu/evalresp/resp"
)

// writeTables renders r's four output files into dir, per SPEC_FULL.md
// §6.2: %.6E scientific notation, two spaces between columns, Unix line
// endings.
func writeTables(dir string, r *resp.Response) error {
	label := r.Label()

	tables := []struct {
		prefix string
		format func(w *os.File, f float64, v complex128) error
	}{
		{"SPECTRA", func(w *os.File, f float64, v complex128) error {
			_, err := fmt.Fprintf(w, "%.6E  %.6E  %.6E\n", f, real(v), imag(v))
			return err
		}},
		{"AMP", func(w *os.File, f float64, v complex128) error {
			_, err := fmt.Fprintf(w, "%.6E  %.6E\n", f, cmplx.Abs(v))
			return err
		}},
		{"PHASE", func(w *os.File, f float64, v complex128) error {
			_, err := fmt.Fprintf(w, "%.6E  %.6E\n", f, cmplx.Phase(v)*180/math.Pi)
			return err
		}},
		{"FAP", func(w *os.File, f float64, v complex128) error {
			_, err := fmt.Fprintf(w, "%.6E  %.6E  %.6E\n", f, cmplx.Abs(v), cmplx.Phase(v)*180/math.Pi)
			return err
		}},
	}

	for _, t := range tables {
		path := filepath.Join(dir, t.prefix+"."+label)
		w, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		for i, f := range r.Freqs {
			if err := t.format(w, f, r.Values[i]); err != nil {
				w.Close()
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", path, err)
		}
	}
	return nil
}
