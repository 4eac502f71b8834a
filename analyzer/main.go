package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"

	"github.com/abiiranathan/go-component-lsp/analyzer/checker"
	"github.com/abiiranathan/go-component-lsp/analyzer/diag"
	"github.com/abiiranathan/go-component-lsp/analyzer/host"
	"github.com/abiiranathan/go-component-lsp/analyzer/watch"
)

// Output is the JSON structure emitted for a full-project analysis.
type Output struct {
	// Diagnostics contains every diagnostic, ordered by file then offset.
	Diagnostics []diag.Diagnostic `json:"diagnostics"`

	// Errors contains non-fatal analysis errors (optional).
	Errors []string `json:"errors,omitempty"`
}

// main is the CLI entry point for the component template analyzer.
func main() {
	// Command-line flags
	dir := flag.String("dir", ".", "Go source directory to analyze")
	file := flag.String("file", "", "Report diagnostics for this file only")
	pretty := flag.Bool("pretty", false, "Human-readable colored output instead of JSON")
	compress := flag.Bool("compress", false, "Output gzip-compressed JSON")
	watchMode := flag.Bool("watch", false, "Keep running and re-analyze on file changes")
	flag.Parse()

	absDir := mustAbs(*dir)

	target := ""
	if *file != "" {
		target = mustAbs(*file)
	}

	if *watchMode {
		runWatch(absDir, target, *pretty)
		return
	}

	output, err := analyze(absDir, target)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *pretty {
		printPretty(output)
		if hasErrors(output.Diagnostics) {
			os.Exit(1)
		}
		return
	}
	encodeJSON(output, *compress)
}

// analyze loads the project under dir and collects diagnostics. With a
// target file only that file is queried; otherwise every host file and
// every external template they reference is.
func analyze(dir, target string) (Output, error) {
	ix, err := host.Load(dir, host.DefaultConfig())
	if err != nil {
		return Output{}, err
	}
	engine := checker.New(ix, host.NewOracle())

	files := []string{target}
	if target == "" {
		files = projectFiles(ix)
	}

	var out Output
	for _, f := range files {
		out.Diagnostics = append(out.Diagnostics, engine.DiagnosticsForFile(f)...)
	}
	diag.SortStable(out.Diagnostics)
	out.Errors = ix.Errors()
	return out, nil
}

// projectFiles returns every file worth querying: the host files plus each
// external template they reference, deduplicated and sorted.
func projectFiles(ix *host.Index) []string {
	seen := make(map[string]bool)
	for _, hf := range ix.HostFiles() {
		seen[hf] = true
		for _, d := range ix.HostDeclarations(hf) {
			if d.TemplateURL == "" || d.HasTemplate {
				continue
			}
			if resolved, ok := ix.ResolveTemplatePath(hf, d.TemplateURL); ok {
				seen[resolved] = true
			}
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// runWatch analyzes once, then re-analyzes after every file-system change.
// Go file changes can add or remove declarations, so the whole index is
// rebuilt per report rather than tracked incrementally.
func runWatch(dir, target string, pretty bool) {
	report := func() {
		output, err := analyze(dir, target)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		if pretty {
			printPretty(output)
		} else {
			encodeJSON(output, false)
		}
	}
	report()

	changed := make(chan string, 64)
	w, err := watch.New(invalidatorFunc(func(file string) { changed <- file }))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer w.Close()

	if err := w.AddTree(dir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	go func() {
		if err := w.Run(context.Background()); err != nil && err != context.Canceled {
			fmt.Fprintln(os.Stderr, err)
		}
		close(changed)
	}()

	for range changed {
		// Drain bursts so one save produces one report.
		for draining := true; draining; {
			select {
			case <-changed:
			default:
				draining = false
			}
		}
		report()
	}
}

// invalidatorFunc adapts a function to the watch.Invalidator interface.
type invalidatorFunc func(file string)

func (f invalidatorFunc) Invalidate(file string) { f(file) }

// printPretty writes human-readable colored diagnostics to stdout.
func printPretty(output Output) {
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow, color.Bold)
	fileColor := color.New(color.FgCyan)

	for _, d := range output.Diagnostics {
		label := errColor.Sprint("error")
		if d.Category == diag.Warning {
			label = warnColor.Sprint("warning")
		}
		line, col := lineCol(d.File, d.Span.Offset)
		fmt.Printf("%s:%d:%d: %s: %s\n", fileColor.Sprint(d.File), line, col, label, d.Message)
	}

	for _, e := range output.Errors {
		fmt.Printf("%s: %s\n", warnColor.Sprint("analysis"), e)
	}

	if len(output.Diagnostics) == 0 {
		fmt.Println(color.GreenString("no template diagnostics"))
	}
}

// lineCol converts a byte offset into 1-based line and column numbers by
// reading the file. Falls back to 1:1 when the file cannot be read or the
// offset is out of range.
func lineCol(file string, offset int) (int, int) {
	data, err := os.ReadFile(file)
	if err != nil || offset < 0 || offset > len(data) {
		return 1, 1
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func hasErrors(ds []diag.Diagnostic) bool {
	for _, d := range ds {
		if d.Category == diag.Error {
			return true
		}
	}
	return false
}

// encodeJSON serializes output as JSON and writes it to stdout.
//
// If compress is true, the output is gzip-compressed.
func encodeJSON(output Output, compress bool) {
	if compress {
		writeGzipJSON(output)
		return
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(output); err != nil {
		panic("failed to encode JSON: " + err.Error())
	}
}

// writeGzipJSON writes gzip-compressed JSON to stdout.
func writeGzipJSON(output Output) {
	gzWriter := gzip.NewWriter(os.Stdout)

	enc := json.NewEncoder(gzWriter)
	if err := enc.Encode(output); err != nil {
		panic("failed to encode JSON: " + err.Error())
	}

	if err := gzWriter.Close(); err != nil {
		panic("failed to close gzip writer: " + err.Error())
	}
}

// mustAbs resolves path to an absolute path.
//
// The program exits if resolution fails, since relative paths would
// invalidate downstream analysis.
func mustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not resolve absolute path for %s: %v\n", path, err)
		os.Exit(1)
	}
	return abs
}
