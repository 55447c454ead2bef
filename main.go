/*
Generates the primitives listed in a TOML manifest and writes them out
as binary geometry files, optionally watching the manifest for changes.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/tessera/engine"
)

func main() {
	var (
		manifest    = flag.String("manifest", "", "path of the primitive manifest (required)")
		out         = flag.String("out", "", "output directory, overrides the manifest setting")
		watch       = flag.Bool("watch", false, "regenerate whenever the manifest changes")
		workers     = flag.Int("workers", 0, "number of generation workers (default one per CPU)")
		logLevel    = flag.String("log-level", "", "debug, info, warn, error or fatal; overrides the manifest setting")
		uvPreview   = flag.Bool("uv-preview", false, "also write a UV layout PNG per geometry")
		previewSize = flag.Int("preview-size", 0, "UV preview size in pixels, overrides the manifest setting")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s -manifest file.toml [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(*manifest) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	engine, err := engine.New(&engine.ApplicationConfig{
		Name:         "tessera",
		ManifestPath: *manifest,
		OutputDir:    *out,
		Watch:        *watch,
		Workers:      *workers,
		LogLevel:     *logLevel,
		UVPreview:    *uvPreview,
		PreviewSize:  *previewSize,
	})
	if err != nil {
		panic(err)
	}

	if err := engine.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start stop goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		engine.Stop()
	}()

	// run engine
	runErr := engine.Run()
	if err := engine.Shutdown(); err != nil {
		panic(err)
	}
	if runErr != nil {
		panic(runErr)
	}
}
