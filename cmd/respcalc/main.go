// Command respcalc evaluates instrument responses from RESP files against
// a YAML request and writes SPECTRA/AMP/PHASE/FAP tables, one set per
// matched channel.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/iris-edu/evalresp/driver"
)

var (
	configPath = pflag.StringP("config", "c", "", "path to the YAML request file")
	outDir     = pflag.StringP("out", "o", ".", "directory to write output tables into")
	verbose    = pflag.BoolP("verbose", "v", false, "log parse/validate/evaluate warnings")
)

func main() {
	pflag.Parse()
	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "respcalc: --config is required")
		os.Exit(2)
	}

	req, err := driver.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "respcalc:", err)
		os.Exit(1)
	}
	if *verbose {
		req.Log = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	results := driver.Run(req)

	var nerrors int
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.File, r.Err)
			nerrors++
			continue
		}
		if err := writeTables(*outDir, r.Response); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.File, err)
			nerrors++
		}
	}

	if nerrors > 0 {
		os.Exit(1)
	}
}
