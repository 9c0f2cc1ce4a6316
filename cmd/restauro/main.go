package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/opentextlab/restauro/internal/recovery"
)

type options struct {
	OutputDir     string `short:"o" long:"output" default:"processed_documents" description:"Directory for recovered .md artifacts"`
	FormatTimeout int    `long:"format-timeout" default:"60" description:"Seconds allowed per formatter call"`

	Args struct {
		Files []string `positional-arg-name:"pdf" required:"1"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	ctx := context.Background()
	failed := 0
	for _, file := range opts.Args.Files {
		// A fresh processor per file: per-document state never carries over.
		proc := recovery.NewProcessor(
			recovery.DefaultExtractors(),
			recovery.NewDocconvFormatter(),
			recovery.WithFormatTimeout(time.Duration(opts.FormatTimeout)*time.Second),
		)

		report, err := proc.ProcessFile(ctx, file, opts.OutputDir)
		if err != nil {
			log.Printf("processing failed for %s: %v", file, err)
			failed++
			continue
		}
		log.Printf("done: %s (method=%s language=%s md5=%s)", report.OutputPath, report.Method, report.Language, report.Digest)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
