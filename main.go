// sitetools syncs email preview HTML into the Apps Script source as
// JavaScript template literals, and pads site images (see pad.go).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cartcure/sitetools/internal/discover"
	"github.com/cartcure/sitetools/internal/htmlbody"
	"github.com/cartcure/sitetools/internal/jscheck"
	"github.com/cartcure/sitetools/internal/manifest"
	"github.com/cartcure/sitetools/internal/rewrite"
	"github.com/cartcure/sitetools/internal/templit"
)

var version = "dev"

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "pad" {
		if err := runPad(args[1:], os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := run(args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sitetools", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		dryRun       bool
		listOnly     bool
		only         string
		previewsDir  string
		codePath     string
		manifestPath string
		verify       bool
		showVersion  bool
	)

	fs.BoolVar(&dryRun, "dry-run", false, "show what would change without modifying files")
	fs.StringVar(&only, "template", "", "only sync templates whose file name contains this substring")
	fs.BoolVar(&listOnly, "list", false, "list configured templates and exit")
	fs.StringVar(&previewsDir, "previews", "email-previews", "directory containing preview HTML files")
	fs.StringVar(&codePath, "code", filepath.Join("apps-script", "Code.gs"), "Apps Script source file to update")
	fs.StringVar(&manifestPath, "manifest", "", "YAML manifest overriding the built-in template tables")
	fs.BoolVar(&verify, "verify", true, "parse the rewritten script as JavaScript before writing")
	fs.BoolVar(&showVersion, "V", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return err
	}

	if showVersion {
		_, _ = fmt.Fprintf(stdout, "sitetools %s\n", version)
		return nil
	}

	m, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	if listOnly {
		return listTemplates(stdout, m, previewsDir)
	}

	if info, err := os.Stat(previewsDir); err != nil || !info.IsDir() {
		return fmt.Errorf("previews directory not found: %s", previewsDir)
	}
	if _, err := os.Stat(codePath); err != nil {
		return fmt.Errorf("script file not found: %s", codePath)
	}

	templates := m.Match(only)
	if len(templates) == 0 {
		return fmt.Errorf("no template matching %q; available: %s", only, strings.Join(m.Files(), ", "))
	}

	if dryRun {
		_, _ = fmt.Fprintln(stdout, "DRY RUN - no files will be modified")
	}
	_, _ = fmt.Fprintf(stdout, "Previews: %s\nScript:   %s\n", previewsDir, codePath)

	var updated, skipped, failed int
	for _, t := range templates {
		switch syncTemplate(stdout, m, t, previewsDir, codePath, dryRun, verify) {
		case outcomeUpdated:
			updated++
		case outcomeSkipped:
			skipped++
		case outcomeFailed:
			failed++
		}
	}

	_, _ = fmt.Fprintf(stdout, "\nSummary: %d configured, %d updated, %d skipped, %d errors\n",
		len(templates), updated, skipped, failed)
	if dryRun && updated > 0 {
		_, _ = fmt.Fprintln(stdout, "Run without -dry-run to apply changes")
	}
	return nil
}

func loadManifest(path string) (*manifest.Manifest, error) {
	if path == "" {
		return manifest.Default()
	}
	return manifest.Load(path)
}

type outcome int

const (
	outcomeUpdated outcome = iota
	outcomeSkipped
	outcomeFailed
)

// syncTemplate runs the full pipeline for one template: read the preview,
// extract the body, substitute placeholders, escape and indent, locate the
// literal in the script, then splice and write (or just report, in dry-run).
// Locator failures are reported and skipped so a batch run keeps going.
func syncTemplate(stdout io.Writer, m *manifest.Manifest, t *manifest.Template, previewsDir, codePath string, dryRun, verify bool) outcome {
	if t.Skip != nil {
		note := t.Skip.Note
		if note == "" {
			note = "marked as skip"
		}
		_, _ = fmt.Fprintf(stdout, "\nSkipping %s: %s\n", t.File, note)
		return outcomeSkipped
	}

	previewPath := filepath.Join(previewsDir, t.File)
	previewData, err := os.ReadFile(previewPath)
	if err != nil {
		_, _ = fmt.Fprintf(stdout, "\nWarning: preview not found: %s\n", t.File)
		return outcomeFailed
	}

	_, _ = fmt.Fprintf(stdout, "\nProcessing %s...\n  Function: %s\n", t.File, t.Function)

	content := htmlbody.Extract(string(previewData))
	content = rewrite.Substitute(content, m.Pairs(t))
	content = rewrite.Escape(content)
	content = rewrite.Indent(content)

	source, err := os.ReadFile(codePath)
	if err != nil {
		_, _ = fmt.Fprintf(stdout, "  ERROR: %v\n", err)
		return outcomeFailed
	}

	region, err := templit.Locate(string(source), t.Target())
	if err != nil {
		_, _ = fmt.Fprintf(stdout, "  SKIPPED: %v\n", err)
		return outcomeSkipped
	}

	newSource := rewrite.Splice(string(source), region, content)
	if verify {
		if err := jscheck.Check([]byte(newSource)); err != nil {
			_, _ = fmt.Fprintf(stdout, "  ERROR: rewritten script does not parse: %v\n", err)
			return outcomeFailed
		}
	}

	if dryRun {
		old := region.End - region.Start
		_, _ = fmt.Fprintf(stdout, "  DRY RUN: would replace %d chars with %d chars\n", old, len(content))
		preview := content
		if len(preview) > 200 {
			preview = preview[:200]
		}
		_, _ = fmt.Fprintf(stdout, "  Preview: %s...\n", strings.ReplaceAll(preview, "\n", "\\n"))
		return outcomeUpdated
	}

	if err := os.WriteFile(codePath, []byte(newSource), 0o644); err != nil {
		_, _ = fmt.Fprintf(stdout, "  ERROR: %v\n", err)
		return outcomeFailed
	}
	_, _ = fmt.Fprintf(stdout, "  SUCCESS: updated %s (%d chars)\n", t.Function, len(content))
	return outcomeUpdated
}

// listTemplates prints every configured template with its status, then any
// preview files on disk that have no configuration.
func listTemplates(stdout io.Writer, m *manifest.Manifest, previewsDir string) error {
	_, _ = fmt.Fprintln(stdout, "Configured email templates:")
	configured := make(map[string]struct{}, len(m.Templates))
	for i := range m.Templates {
		t := &m.Templates[i]
		configured[t.File] = struct{}{}
		status := "OK"
		if t.Skip != nil {
			status = "SKIP"
		}
		_, _ = fmt.Fprintf(stdout, "  [%-4s] %s\n         Function: %s\n", status, t.File, t.Function)
		if t.Skip != nil && t.Skip.Note != "" {
			_, _ = fmt.Fprintf(stdout, "         Note: %s\n", t.Skip.Note)
		}
	}

	previews, err := discover.Previews(previewsDir)
	if err != nil {
		return nil // no previews directory is fine when just listing
	}
	var unconfigured []string
	for _, name := range previews {
		if _, ok := configured[name]; !ok {
			unconfigured = append(unconfigured, name)
		}
	}
	if len(unconfigured) > 0 {
		_, _ = fmt.Fprintln(stdout, "\nPreviews with no configuration:")
		for _, name := range unconfigured {
			_, _ = fmt.Fprintf(stdout, "  %s\n", name)
		}
	}
	return nil
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-template": true, "--template": true,
	"-previews": true, "--previews": true,
	"-code": true, "--code": true,
	"-manifest": true, "--manifest": true,
}

// reorderArgs moves positional arguments after all flags so Go's flag package
// can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
