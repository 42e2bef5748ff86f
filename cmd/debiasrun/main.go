// Command debiasrun runs one debiasing job without a window and logs its
// progress. The exit status is 1 when any stage fails.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"dh-debias/internal/config"
	"dh-debias/internal/debias"
	"dh-debias/internal/job"
	"dh-debias/internal/version"
)

func main() {
	grid := flag.String("grid", "", "Path to the elevation-difference grid")
	mask := flag.String("mask", "", "Path to the unstable-terrain shapefile")
	cfgPath := flag.String("config", "", "Path to debias.yaml (default: next to the executable)")
	flag.Parse()

	inputs := job.Inputs{*grid, *mask}
	if !inputs.Ready() {
		fmt.Println("Usage: debiasrun -grid <dh.tif> -mask <unstable.shp> [-config <debias.yaml>]")
		os.Exit(2)
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s", version.String())

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	runner, err := debias.NewRunner(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	j := job.New(inputs)
	out, err := runner.Run(j, job.NewLogNotifier())
	if err != nil {
		var se *job.StageError
		if errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, se.Message())
		}
		os.Exit(1)
	}
	fmt.Println(out)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}
