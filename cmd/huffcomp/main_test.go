package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chronos-tachyon/huffcomp"
)

func TestDecompressedName(t *testing.T) {
	type testRow struct {
		input  string
		expect string
	}

	testData := [...]testRow{
		{input: "notes.txt.huff", expect: "notes.txt"},
		{input: "dir/archive.huff", expect: "dir/archive"},
		{input: "notes.txt", expect: "notes.txt.out"},
		{input: ".huff", expect: ".huff.out"},
	}
	for _, row := range testData {
		t.Run(row.input, func(t *testing.T) {
			actual := decompressedName(row.input)
			if actual != row.expect {
				t.Errorf("wrong name:\n\texpect: %s\n\tactual: %s", row.expect, actual)
			}
		})
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	data := []byte("abracadabra")
	raw, err := huffcomp.CompressBytes(data)
	if err != nil {
		t.Fatalf("CompressBytes failed: %v", err)
	}

	if err := verifyRoundTrip(data, raw); err != nil {
		t.Errorf("verifyRoundTrip failed: %v", err)
	}

	if err := verifyRoundTrip([]byte("abracadabrx"), raw); err == nil {
		t.Errorf("verifyRoundTrip accepted mismatched data")
	}

	err = verifyRoundTrip(data, raw[:len(raw)-1])
	if !errors.Is(err, huffcomp.ErrTruncatedStream) {
		t.Errorf("expected ErrTruncatedStream, got %v", err)
	}
}

func writeTestFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o666); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func readTestFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	return data
}

func TestRun_UsageErrors(t *testing.T) {
	type testRow struct {
		name   string
		args   []string
		expect string
	}

	testData := [...]testRow{
		{name: "no-mode", args: []string{"file"}, expect: "exactly one of --compress or --decompress"},
		{name: "both-modes", args: []string{"-c", "-d", "file"}, expect: "exactly one of --compress or --decompress"},
		{name: "no-file", args: []string{"-c"}, expect: "expected exactly one FILE, got 0"},
		{name: "two-files", args: []string{"-d", "a", "b"}, expect: "expected exactly one FILE, got 2"},
		{name: "dump-with-d", args: []string{"-d", "-dump", "file"}, expect: "--verify and --dump only apply"},
		{name: "unknown-flag", args: []string{"-x", "file"}, expect: "flag provided but not defined"},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(row.args, &stdout, &stderr)
			if code != exitUsage {
				t.Errorf("wrong exit code: expect %d, actual %d", exitUsage, code)
			}
			if !strings.Contains(stderr.String(), row.expect) {
				t.Errorf("stderr lacks %q:\n%s", row.expect, stderr.String())
			}
			if !strings.Contains(stderr.String(), "Usage: huffcomp") {
				t.Errorf("stderr lacks usage message:\n%s", stderr.String())
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-h"}, &stdout, &stderr); code != exitOK {
		t.Errorf("wrong exit code: expect %d, actual %d", exitOK, code)
	}
	if stdout.String() != usageMessage() {
		t.Errorf("wrong stdout:\n\texpect: %q\n\tactual: %q", usageMessage(), stdout.String())
	}
}

func TestRun_RoundTrip(t *testing.T) {
	type testRow struct {
		name           string
		compressArgs   []string
		compressedName string
		decompressArgs []string
		outputName     string
	}

	testData := [...]testRow{
		{
			name:           "default-names",
			compressArgs:   []string{"-c", "notes.txt"},
			compressedName: "notes.txt.huff",
			decompressArgs: []string{"-d", "notes.txt.huff"},
			outputName:     "notes.txt",
		},
		{
			name:           "long-flags",
			compressArgs:   []string{"--compress", "--verify", "notes.txt"},
			compressedName: "notes.txt.huff",
			decompressArgs: []string{"--decompress", "--output", "copy.txt", "notes.txt.huff"},
			outputName:     "copy.txt",
		},
		{
			name:           "explicit-output",
			compressArgs:   []string{"-c", "-o", "packed.bin", "notes.txt"},
			compressedName: "packed.bin",
			decompressArgs: []string{"-d", "packed.bin"},
			outputName:     "packed.bin.out",
		},
	}
	input := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog\n", 20))
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			dir := t.TempDir()
			join := func(args []string) []string {
				out := make([]string, len(args))
				copy(out, args)
				last := len(out) - 1
				out[last] = filepath.Join(dir, out[last])
				for i := 0; i < last; i++ {
					if out[i] == "-o" || out[i] == "--output" {
						out[i+1] = filepath.Join(dir, out[i+1])
					}
				}
				return out
			}
			writeTestFile(t, filepath.Join(dir, "notes.txt"), input)

			var stdout, stderr bytes.Buffer
			if code := run(join(row.compressArgs), &stdout, &stderr); code != exitOK {
				t.Fatalf("compress: exit code %d, stderr:\n%s", code, stderr.String())
			}
			expect, err := huffcomp.CompressBytes(input)
			if err != nil {
				t.Fatalf("CompressBytes failed: %v", err)
			}
			if actual := readTestFile(t, filepath.Join(dir, row.compressedName)); !bytes.Equal(expect, actual) {
				t.Errorf("wrong compressed bytes in %s", row.compressedName)
			}

			if row.outputName == "notes.txt" {
				if err := os.Remove(filepath.Join(dir, "notes.txt")); err != nil {
					t.Fatalf("Remove failed: %v", err)
				}
			}

			if code := run(join(row.decompressArgs), &stdout, &stderr); code != exitOK {
				t.Fatalf("decompress: exit code %d, stderr:\n%s", code, stderr.String())
			}
			if actual := readTestFile(t, filepath.Join(dir, row.outputName)); !bytes.Equal(input, actual) {
				t.Errorf("wrong output in %s:\n\texpect: %q\n\tactual: %q", row.outputName, input, actual)
			}
			if stdout.Len() != 0 {
				t.Errorf("unexpected stdout: %q", stdout.String())
			}
		})
	}
}

func TestRun_Dump(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in")
	writeTestFile(t, inputPath, []byte("aaabbc"))

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 2\n",
		"\tEncode('a') = \"0\"\n",
		"\tEncode('b') = \"11\"\n",
		"\tEncode('c') = \"10\"\n",
		"}\n",
	}, "")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-c", "-dump", inputPath}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr.String())
	}
	if actualDump := stdout.String(); actualDump != expectDump {
		t.Errorf("wrong dump:\n\texpect: %q\n\tactual: %q", expectDump, actualDump)
	}

	expect := []byte{
		0x01, 0x00, 0x01, 'a', 0x01, 0x00, 0x01, 'c', 0x00, 0x01, 'b',
		0x00, 0x00, 0x00, 0x06,
		0x1f, 0x00,
	}
	if actual := readTestFile(t, inputPath+".huff"); !bytes.Equal(expect, actual) {
		t.Errorf("wrong artifact:\n\texpect: %#v\n\tactual: %#v", expect, actual)
	}
}

func TestRun_Failures(t *testing.T) {
	dir := t.TempDir()
	emptyPath := filepath.Join(dir, "empty")
	writeTestFile(t, emptyPath, nil)

	raw, err := huffcomp.CompressBytes([]byte("abracadabra"))
	if err != nil {
		t.Fatalf("CompressBytes failed: %v", err)
	}
	truncatedPath := filepath.Join(dir, "short.huff")
	writeTestFile(t, truncatedPath, raw[:len(raw)-1])

	type testRow struct {
		name   string
		args   []string
		expect string
	}

	testData := [...]testRow{
		{name: "missing-file", args: []string{"-c", filepath.Join(dir, "nope")}, expect: "no such file"},
		{name: "empty-input", args: []string{"-c", emptyPath}, expect: huffcomp.ErrEmptyInput.Error()},
		{name: "truncated", args: []string{"-d", truncatedPath}, expect: huffcomp.ErrTruncatedStream.Error()},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(row.args, &stdout, &stderr)
			if code != exitError {
				t.Errorf("wrong exit code: expect %d, actual %d", exitError, code)
			}
			if !strings.Contains(stderr.String(), row.expect) {
				t.Errorf("stderr lacks %q:\n%s", row.expect, stderr.String())
			}
		})
	}

	if _, err := os.Stat(truncatedPath[:len(truncatedPath)-len(suffix)]); !os.IsNotExist(err) {
		t.Errorf("expected no output file after failed decompression, got %v", err)
	}
	if _, err := os.Stat(emptyPath + suffix); !os.IsNotExist(err) {
		t.Errorf("expected no output file after failed compression, got %v", err)
	}
}
