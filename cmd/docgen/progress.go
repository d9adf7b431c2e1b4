// # cmd/docgen/progress.go
package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progressReporter renders parse and history progress bars during a run.
type progressReporter struct {
	quiet bool

	fileBar   *progressbar.ProgressBar
	commitBar *progressbar.ProgressBar
	commits   int
}

func newProgressReporter(quiet bool) *progressReporter {
	return &progressReporter{quiet: quiet}
}

func (p *progressReporter) OnFileParsed(done, total int) {
	if p.quiet {
		return
	}
	if p.fileBar == nil {
		p.fileBar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Parsing sources"),
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
	p.fileBar.Add(1)
}

func (p *progressReporter) OnCommitExtracted(count int) {
	if p.quiet {
		return
	}
	if p.commitBar == nil {
		// Total commit count is unknown up front, so render a spinner.
		p.commitBar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Reading history"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("commits/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)
	}
	if delta := count - p.commits; delta > 0 {
		p.commitBar.Add(delta)
		p.commits = count
	}
}

// Reset clears bar state ahead of a fresh run.
func (p *progressReporter) Reset() {
	p.fileBar = nil
	p.commitBar = nil
	p.commits = 0
}

func (p *progressReporter) Finish() {
	if p.quiet {
		return
	}
	if p.fileBar != nil {
		p.fileBar.Finish()
	}
	if p.commitBar != nil {
		p.commitBar.Finish()
	}
}
