package app

import (
	"fmt"
	"io"
)

// Version is set at build time with -ldflags "-X github.com/agbru/seqcalc/internal/app.Version=...".
var Version = "dev"

// PrintVersion writes the program name and version.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "seqcalc %s\n", Version)
}
