package main

import (
	"fmt"
	"io"
	"strings"
)

// Displays a finished codec run in a formatted way
func DisplayReport(w io.Writer, report *Report) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "LZ78 %s\n", strings.ToUpper(report.Op))
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintf(w, "Input:  %s (%d bytes)\n", report.Input, report.InputBytes)
	fmt.Fprintf(w, "Output: %s (%d bytes)\n", report.Output, report.OutputBytes)
	if report.Remote != "" {
		fmt.Fprintf(w, "Remote: %s\n", report.Remote)
	}
	fmt.Fprintf(w, "Format: %s\n", report.Format)
	fmt.Fprintf(w, "Tokens: %d\n", report.Tokens)
	fmt.Fprintf(w, "Ratio:  %s\n", formatRatio(report.Ratio()))

	if report.ZstdBytes > 0 {
		fmt.Fprintf(w, "zstd reference: %d bytes\n", report.ZstdBytes)
	}
	fmt.Fprintf(w, "Elapsed: %s\n", report.Elapsed)

	fmt.Fprintln(w, strings.Repeat("-", 60))
}

// Formats a size ratio as a percentage
func formatRatio(ratio float64) string {
	if ratio == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// Prints the command line usage
func PrintUsage(w io.Writer, program string) {
	fmt.Fprintf(w, "Usage: %s -c/-x <input_file> [-o <output_file>] [options]\n", program)
	fmt.Fprintf(w, "       %s serve [-addr host:port]\n", program)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -o <file>         output file (default derived from the input name)")
	fmt.Fprintln(w, "  -f legacy|packed  wire format (decompress detects it when omitted)")
	fmt.Fprintln(w, "  -legacy-fallback  decode unresolved references like the old tool")
	fmt.Fprintln(w, "  -stats            print a report with a zstd reference size")
	fmt.Fprintln(w, "  -remote           run the codec on the service at -url")
	fmt.Fprintln(w, "  -url <ws-url>     codec service URL (default $LZ78_URL or ws://localhost:7878/lz78)")
}
