package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// AnalyzeProgress reports field assembly progress with a progress bar.
// It implements analysis.ProgressReporter.
type AnalyzeProgress struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewAnalyzeProgress creates a progress reporter. When quiet is set no
// output is produced.
func NewAnalyzeProgress(quiet bool) *AnalyzeProgress {
	return &AnalyzeProgress{quiet: quiet}
}

func (p *AnalyzeProgress) Start(total int) {
	if p.quiet {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Analyzing fields"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("fields/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (p *AnalyzeProgress) Increment() {
	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *AnalyzeProgress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}
