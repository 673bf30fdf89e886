// Command huffcomp compresses and decompresses files with static Huffman
// coding.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/op/go-logging"

	"github.com/chronos-tachyon/huffcomp"
)

var log = logging.MustGetLogger("huffcomp/cmd")

const progName = "huffcomp"
const suffix = ".huff"
const usageMessageRaw = `
Usage: huffcomp (-c | -d) [OPTIONS] FILE

Modes:
  --compress, -c
	Compress FILE into FILE.huff.
  --decompress, -d
	Decompress FILE into FILE without its .huff suffix, or FILE.out
	if there is no such suffix.

Options:
  --output PATH, -o PATH
	Write the result to PATH instead.
  --verify
	After compressing, decompress in memory and compare checksums
	before writing anything.
  --dump
	After compressing, print the code table to standard output.
  --debug
	Log debugging detail to standard error.
`

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func usageMessage() string {
	return strings.TrimLeft(usageMessageRaw, "\n")
}

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func startLogging(w io.Writer) logging.LeveledBackend {
	backend := logging.NewLogBackend(w, progName+": ", 0)
	formatSpec := "%{level:8s} %{module:-14s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	return leveled
}

type options struct {
	compress   bool
	decompress bool
	output     string
	verify     bool
	dump       bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	leveledLogBackend := startLogging(stderr)

	usageErrorf := func(detailFmt string, detailArgs ...interface{}) int {
		detail := fmt.Sprintf(detailFmt, detailArgs...)
		fmt.Fprintf(stderr, "%s: %s\n%s", progName, detail, usageMessage())
		return exitUsage
	}

	var opts options
	var debugLogging bool
	ourFlags := flag.NewFlagSet(progName, flag.ContinueOnError)
	ourFlags.Usage = func() {}
	ourFlags.SetOutput(&nullWriter{})

	// Usage strings are hardcoded above.

	ourFlags.BoolVar(&opts.compress, "compress", false, "")
	ourFlags.BoolVar(&opts.compress, "c", false, "")
	ourFlags.BoolVar(&opts.decompress, "decompress", false, "")
	ourFlags.BoolVar(&opts.decompress, "d", false, "")
	ourFlags.StringVar(&opts.output, "output", "", "")
	ourFlags.StringVar(&opts.output, "o", "", "")
	ourFlags.BoolVar(&opts.verify, "verify", false, "")
	ourFlags.BoolVar(&opts.dump, "dump", false, "")
	ourFlags.BoolVar(&debugLogging, "debug", false, "")

	argErr := ourFlags.Parse(args)
	if argErr == flag.ErrHelp {
		_, _ = io.WriteString(stdout, usageMessage())
		return exitOK
	} else if argErr != nil {
		return usageErrorf("%s", argErr.Error())
	}

	if debugLogging {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	if opts.compress == opts.decompress {
		return usageErrorf("exactly one of --compress or --decompress is required")
	}
	if ourFlags.NArg() != 1 {
		return usageErrorf("expected exactly one FILE, got %d arguments", ourFlags.NArg())
	}
	if opts.decompress && (opts.verify || opts.dump) {
		return usageErrorf("--verify and --dump only apply to --compress")
	}
	inputPath := ourFlags.Arg(0)

	var err error
	if opts.compress {
		err = compressFile(stdout, inputPath, opts)
	} else {
		err = decompressFile(inputPath, opts)
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", progName, err.Error())
		return exitError
	}
	return exitOK
}

func compressFile(stdout io.Writer, inputPath string, opts options) error {
	outputPath := opts.output
	if outputPath == "" {
		outputPath = inputPath + suffix
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	a, err := huffcomp.Compress(data)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	raw, err := a.MarshalBinary()
	if err != nil {
		return err
	}

	if opts.verify {
		if err := verifyRoundTrip(data, raw); err != nil {
			return fmt.Errorf("%s: %w", inputPath, err)
		}
	}

	if opts.dump {
		if _, err := huffcomp.DeriveCodeTable(a.Tree).Dump(stdout); err != nil {
			return err
		}
	}

	if err := os.WriteFile(outputPath, raw, 0o666); err != nil {
		return err
	}
	log.Infof("compressed %s (%d bytes) to %s (%d bytes)", inputPath, len(data), outputPath, len(raw))
	return nil
}

func decompressFile(inputPath string, opts options) error {
	outputPath := opts.output
	if outputPath == "" {
		outputPath = decompressedName(inputPath)
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	data, err := huffcomp.DecompressBytes(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	if err := os.WriteFile(outputPath, data, 0o666); err != nil {
		return err
	}
	log.Infof("decompressed %s (%d bytes) to %s (%d bytes)", inputPath, len(raw), outputPath, len(data))
	return nil
}

func decompressedName(inputPath string) string {
	if trimmed := strings.TrimSuffix(inputPath, suffix); trimmed != inputPath && trimmed != "" {
		return trimmed
	}
	return inputPath + ".out"
}

func verifyRoundTrip(data []byte, raw []byte) error {
	expect := xxhash.Sum64(data)
	roundTrip, err := huffcomp.DecompressBytes(raw)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	actual := xxhash.Sum64(roundTrip)
	if expect != actual {
		return fmt.Errorf("verification failed: checksum %016x, expected %016x", actual, expect)
	}
	log.Debugf("verified round trip, xxhash64 %016x", actual)
	return nil
}
