package hil

import (
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	// ErrDeadline reports that the board did not finish before the
	// session deadline.
	ErrDeadline = errors.New("hil: deadline exceeded before summary")
	// ErrNoSummary reports that the stream ended without a summary frame.
	ErrNoSummary = errors.New("hil: stream ended without summary")
)

// Result is everything one selftest run produced.
type Result struct {
	Reports   []Report // all check reports, in arrival order
	Summary   Report   // the closing summary frame
	Failed    int      // reports with Status Fail
	Skipped   int      // reports with Status Skip
	SeqGaps   int      // frames lost between received ones
	Malformed int      // frames whose payload did not parse
}

// Ok reports whether the run passed: no failures, no damaged frames, and
// the board's own summary agrees with what the host saw.
func (r *Result) Ok() bool {
	return r.Failed == 0 &&
		r.Malformed == 0 &&
		r.Summary.Check == CheckSummary &&
		r.Summary.Got == 0 &&
		len(r.Reports) == int(r.Summary.Want)
}

// Run collects reports from the port until the summary frame arrives or the
// deadline passes. Reads that return no data are retried, so a serial port
// with a read timeout polls cleanly. The partial result is returned along
// with any error.
func Run(port io.Reader, deadline time.Duration) (*Result, error) {
	dec := NewDecoder()
	res := &Result{}
	buf := make([]byte, 256)
	limit := time.Now().Add(deadline)
	var lastSeq uint8
	haveSeq := false

	for {
		if time.Now().After(limit) {
			return res, ErrDeadline
		}
		n, err := port.Read(buf)
		if err != nil && err != io.EOF {
			return res, fmt.Errorf("hil: read: %w", err)
		}
		for _, f := range dec.Feed(buf[:n]) {
			if haveSeq && f.Seq != lastSeq+1 {
				res.SeqGaps++
			}
			lastSeq = f.Seq
			haveSeq = true

			rep, perr := ParseReport(f.Payload)
			if perr != nil {
				res.Malformed++
				continue
			}
			if rep.Check == CheckSummary {
				res.Summary = rep
				return res, nil
			}
			res.Reports = append(res.Reports, rep)
			switch rep.Status {
			case Fail:
				res.Failed++
			case Skip:
				res.Skipped++
			}
		}
		if err == io.EOF {
			return res, ErrNoSummary
		}
	}
}
