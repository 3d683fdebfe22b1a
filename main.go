package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

// Parsed command line of a compress or decompress run
type Options struct {
	Op             string
	Input          string
	Output         string
	Format         string
	LegacyFallback bool
	Stats          bool
	Remote         bool
}

var errUsage = errors.New("usage")

// Maps the original operation switches to operations
func parseOperation(arg string) (string, error) {
	switch arg {
	case "-c":
		return OpCompress, nil
	case "-x":
		return OpDecompress, nil
	default:
		return "", fmt.Errorf("invalid operation %s. Must be -c or -x", arg)
	}
}

// Parses "-c|-x <input> [options]"
func parseArgs(args []string, config *Config, stderr io.Writer) (*Options, error) {
	if len(args) < 2 {
		return nil, errUsage
	}

	op, err := parseOperation(args[0])
	if err != nil {
		return nil, err
	}

	opts := &Options{Op: op, Input: args[1]}

	fs := flag.NewFlagSet(op, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.Output, "o", "", "output file")
	fs.StringVar(&opts.Format, "f", "", "wire format: legacy or packed")
	fs.BoolVar(&opts.LegacyFallback, "legacy-fallback", false, "decode unresolved references like the old tool")
	fs.BoolVar(&opts.Stats, "stats", false, "print a compression report")
	fs.BoolVar(&opts.Remote, "remote", false, "run the codec on the remote service")
	fs.StringVar(&config.URL, "url", config.URL, "codec service URL")
	if err := fs.Parse(args[2:]); err != nil {
		return nil, errUsage
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	if opts.Op == OpCompress && opts.Format == "" {
		opts.Format = config.Format
	}
	if opts.Output == "" {
		opts.Output = DefaultOutputPath(opts.Input, opts.Op)
	}
	if !IsURL(opts.Input) && filepath.Clean(opts.Output) == filepath.Clean(opts.Input) {
		return nil, fmt.Errorf("output file %s would overwrite the input, pass -o", opts.Output)
	}

	return opts, nil
}

// Derives the output file name from the input name: compressed files get
// ".lz78", decompressed files "_d.txt", both replacing the last extension
func DefaultOutputPath(input, op string) string {
	if IsURL(input) {
		input = filepath.Base(strings.TrimRight(input, "/"))
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))

	if op == OpDecompress {
		return base + "_d.txt"
	}
	return base + ".lz78"
}

// Cancels the returned context on SIGINT or SIGTERM
func interruptContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-interrupt:
			logger.Println("Interrupt received, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(interrupt)
	}()

	return ctx, cancel
}

// Runs the websocket codec service
func serve(args []string, config *Config, logger *log.Logger) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&config.ListenAddr, "addr", config.ListenAddr, "listen address")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	ctx, cancel := interruptContext(logger)
	defer cancel()

	if err := NewServer(config).Run(ctx); err != nil {
		logger.Printf("Server error: %v", err)
		return 1
	}
	return 0
}

func run(args []string) int {
	config := DefaultConfig()
	logger := log.New(os.Stderr, "[CLI] ", log.LstdFlags)

	if len(args) > 0 && args[0] == "serve" {
		return serve(args[1:], config, logger)
	}

	opts, err := parseArgs(args, config, os.Stderr)
	if err != nil {
		if !errors.Is(err, errUsage) {
			logger.Println(err)
		}
		PrintUsage(os.Stderr, filepath.Base(os.Args[0]))
		return 1
	}

	ctx, cancel := interruptContext(logger)
	defer cancel()

	report, err := NewClient(config).Run(ctx, opts)
	if err != nil {
		logger.Println(err)
		return 1
	}

	if opts.Op == OpCompress {
		fmt.Println("Compression complete")
	} else {
		fmt.Println("Decompression complete")
	}
	if opts.Stats {
		DisplayReport(os.Stdout, report)
	}

	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
