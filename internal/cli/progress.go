package cli

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/classdex/classdex/internal/scan"
)

// ProgressNotifier renders scan progress on the terminal. The terminal
// summary stays on screen after the scan finishes, acting as a persistent
// status line until the next scan overwrites it.
type ProgressNotifier struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewProgressNotifier creates a terminal progress notifier. With quiet
// set, only failures are printed.
func NewProgressNotifier(quiet bool) *ProgressNotifier {
	return &ProgressNotifier{quiet: quiet}
}

func (p *ProgressNotifier) Started() {
	if p.quiet {
		return
	}
	log.Println("Scanning workspace for class definitions...")
}

func (p *ProgressNotifier) Idle() {
	if p.quiet {
		return
	}
	fmt.Println("Nothing to scan: no parseable documents in the workspace")
}

func (p *ProgressNotifier) Progress(completed, total int, percent float64) {
	if p.quiet {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Extracting class names"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)
	}
	p.bar.Set(completed)
}

func (p *ProgressNotifier) Finished(stats scan.Stats) {
	p.bar = nil
	if p.quiet {
		return
	}
	fmt.Printf("✓ Scan complete: %d unique class names from %d files (%d definitions) in %.1fs\n",
		stats.UniqueDefinitions, stats.FilesDiscovered, stats.DefinitionsFound,
		stats.Duration.Seconds())
	if len(stats.Failures) > 0 {
		fmt.Printf("  %d file(s) failed to extract:\n    %s\n",
			len(stats.Failures), strings.Join(stats.FailedPaths(), "\n    "))
	}
}

func (p *ProgressNotifier) Failed(err error) {
	p.bar = nil
	fmt.Printf("✗ Scan failed: %v\n  Run 'classdex scan' to retry.\n", err)
}
