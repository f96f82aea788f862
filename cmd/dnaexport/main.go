// Command dnaexport writes dashboard exports to disk without running the
// HTTP service.
//
//	dnaexport view taxonomy --format csv --out ./exports
//	dnaexport samples --format all
//	dnaexport dashboard --upload reef.fasta --format json
package main

import (
	"fmt"
	"os"

	"github.com/shandysiswandi/godna/internal/pkg/pkglog"
)

func main() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	pkglog.InitLoggingTo(os.Stderr, level)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
