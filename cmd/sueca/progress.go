package main

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// progressBar prints a row of dots as rounds finish, 40 dots per run so it
// fits an 80-column terminal.
type progressBar struct {
	mu          sync.Mutex
	out         io.Writer
	dotsPrinted int
	done        int
	startTime   time.Time
}

const progressDots = 40

func newProgressBar(out io.Writer) *progressBar {
	return &progressBar{out: out, startTime: time.Now()}
}

// Update records that done of total rounds have finished
func (p *progressBar) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total <= 0 {
		return
	}
	if p.dotsPrinted == 0 && done > 0 {
		fmt.Fprintf(p.out, "Simulating %d rounds: ", total)
	}
	p.done = done

	target := done * progressDots / total
	for p.dotsPrinted < target {
		fmt.Fprint(p.out, ".")
		p.dotsPrinted++
	}
}

// Finish ends the line with the elapsed time and rate
func (p *progressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.dotsPrinted == 0 {
		return
	}
	elapsed := time.Since(p.startTime)
	rate := float64(p.done) / elapsed.Seconds()
	fmt.Fprintf(p.out, " %s (%.0f rounds/sec)\n", elapsed.Round(time.Millisecond), rate)
}
