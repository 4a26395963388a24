package cmd

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/sahib/desfile/bench"
	"github.com/sahib/desfile/version"
	"github.com/toqueteos/webbrowser"
	"github.com/urfave/cli"
)

const issueTrackerURL = "https://github.com/sahib/desfile/issues"

// printError simply prints a nicely formatted error to stderr.
func printError(msg string) {
	fmt.Fprintln(os.Stderr, color.RedString("*** ")+msg)
}

// cmdOutput runs a command at `path` with `args` and returns it's output.
// No real error checking is done, on errors an empty string is returned.
func cmdOutput(path string, args ...string) string {
	out, err := exec.Command(path, args...).Output()
	if err != nil {
		// `desfile bug` is best effort.
		printError(fmt.Sprintf("failed to run %s %s", path, strings.Join(args, " ")))
		return ""
	}

	return strings.TrimSpace(string(out))
}

func writeBugReport(w io.Writer) {
	fmt.Fprintln(w, `Please answer these questions before submitting your issue.
Please include anything else you think is helpful. Thanks!

### What did you do?

### What did you expect to see?

### What did you see instead?

### Did you check if a similar bug report was already opened?

### System details:`)

	stats := bench.FetchStats()
	fmt.Fprintf(w, "go version:     ``%s``\n", stats.GoVersion)
	fmt.Fprintf(w, "uname -s -v -m: ``%s``\n", cmdOutput("uname", "-s", "-v", "-m"))
	fmt.Fprintf(w, "cpu:            ``%s (%d/%d cores)``\n",
		stats.CPUBrandName,
		stats.PhysicalCores,
		stats.LogicalCores,
	)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(
		w,
		"desfile version: ``%s [build: %s]``\n",
		version.String(),
		version.BuildTime,
	)
}

// handleBugReport compiles a report of useful info when providing a bug report.
func handleBugReport(ctx *cli.Context) error {
	buf := &bytes.Buffer{}
	writeBugReport(buf)

	printToStdout := ctx.Bool("stdout")
	if !printToStdout {
		// Try to open the issue tracker for convenience:
		urlVal := url.Values{}
		urlVal.Set("body", buf.String())

		if err := webbrowser.Open(issueTrackerURL + "/new?" + urlVal.Encode()); err != nil {
			printError("I failed to open the issue tracker in your browser.")
			printError("Please paste the underlying text manually at this URL:")
			printError(issueTrackerURL)
			printToStdout = true
		}
	}

	if printToStdout {
		fmt.Println(buf.String())
	}

	return nil
}
