package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	jtcsv "github.com/Linol-Hamelton/jtcsv-sub000"
	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	delim := flag.String("d", "", "field delimiter (single character, \\t for tab; default: auto-detect)")
	compact := flag.Bool("compact", false, "emit arrays of raw strings instead of objects")
	noHeaders := flag.Bool("no-headers", false, "treat the first row as data")
	maxRows := flag.Int("max-rows", 0, "abort after this many data rows (0 = unbounded)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("jtcsv\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		os.Exit(0)
	}

	// Log to stderr, stdout carries the JSON output.
	log.SetOutput(os.Stderr)

	opts := types.DefaultOptions()
	switch {
	case *delim == `\t`:
		opts.Delimiter = '\t'
	case len(*delim) == 1:
		opts.Delimiter = (*delim)[0]
	case *delim != "":
		log.Fatalf("-d must be a single character, got %q", *delim)
	}
	if *compact {
		opts.OutputMode = types.OutputCompact
	}
	opts.HasHeaders = !*noHeaders
	opts.MaxRows = *maxRows

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- jtcsv.Convert(ctx, os.Stdin, os.Stdout, opts)
	}()

	select {
	case sig := <-sigChan:
		log.Printf("received signal %v, aborting", sig)
		cancel()
		<-errChan
		os.Exit(1)
	case err := <-errChan:
		if err != nil {
			log.Fatalf("convert: %v", err)
		}
	}
}
