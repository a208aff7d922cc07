package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"simradio/internal/logging"
)

// progressReporter advances once per finished job. On a terminal it draws a
// bar; elsewhere it logs sampled progress lines.
type progressReporter interface {
	Println(out io.Writer, line string)
	Increment()
	Wait()
}

func newProgressReporter(w io.Writer, label string, total int, enabled bool, logger *slog.Logger) progressReporter {
	if enabled && total > 0 && logging.IsTerminal(w) {
		p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(w))
		bar := p.AddBar(int64(total),
			mpb.PrependDecorators(
				decor.Name(label+": "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(
				decor.Percentage(),
				decor.EwmaETA(decor.ET_STYLE_GO, 60),
			),
		)
		return &barProgress{progress: p, bar: bar, last: time.Now()}
	}
	return &logProgress{
		label:   label,
		total:   total,
		sampler: logging.NewProgressSampler(10),
		logger:  logger,
	}
}

type barProgress struct {
	progress *mpb.Progress
	bar      *mpb.Bar
	last     time.Time
}

// Println prints line above the bar when out shares the bar's terminal.
func (b *barProgress) Println(out io.Writer, line string) {
	if logging.IsTerminal(out) {
		_, _ = b.progress.Write([]byte(line + "\n"))
		return
	}
	fmt.Fprintln(out, line)
}

func (b *barProgress) Increment() {
	now := time.Now()
	b.bar.EwmaIncrement(now.Sub(b.last))
	b.last = now
}

func (b *barProgress) Wait() {
	// Cancelled runs leave the bar short of its total; abort so Wait returns.
	if !b.bar.Completed() {
		b.bar.Abort(false)
	}
	b.progress.Wait()
}

type logProgress struct {
	label   string
	total   int
	done    int
	sampler *logging.ProgressSampler
	logger  *slog.Logger
}

func (l *logProgress) Println(out io.Writer, line string) {
	fmt.Fprintln(out, line)
}

func (l *logProgress) Increment() {
	l.done++
	if l.sampler.ShouldLogCount(l.done, l.total, l.label) {
		l.logger.Info("progress",
			logging.String(logging.FieldStage, l.label),
			logging.Int("done", l.done),
			logging.Int("total", l.total))
	}
}

func (l *logProgress) Wait() {}
