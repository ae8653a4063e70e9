package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	labelColor   = color.New(color.FgCyan)
)

// stderr is where status lines go, so stdout stays clean for exports
var stderr io.Writer = os.Stderr

func printSuccess(format string, args ...any) {
	successColor.Fprint(stderr, "✓ ")
	fmt.Fprintf(stderr, format+"\n", args...)
}

func printWarning(format string, args ...any) {
	warnColor.Fprintf(stderr, "⚠️  "+format+"\n", args...)
}

func printError(err error) {
	errorColor.Fprint(stderr, "Error: ")
	fmt.Fprintln(stderr, userMessage(err))
}
