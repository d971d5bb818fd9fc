// Command lox is the loxi interpreter's command-line entry point: run a
// script file or start an interactive REPL.
package main

import (
	"os"

	"github.com/mna/loxi/internal/maincmd"
	"github.com/mna/mainer"
)

var (
	buildVersion = "dev"
	buildDate    = "unknown"
)

func main() {
	cmd := &maincmd.Cmd{BuildVersion: buildVersion, BuildDate: buildDate}
	stdio := mainer.Stdio{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	os.Exit(int(mainer.Run(cmd, os.Args[1:], stdio)))
}
