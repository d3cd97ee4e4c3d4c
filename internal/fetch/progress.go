package fetch

// progress converts a count of completed rows into a whole percentage and
// forwards it only when it changes. It is owned by the collector and is not
// safe for concurrent use.
type progress struct {
	total  int
	last   int
	report func(percent int)
}

func newProgress(total int, report func(int)) *progress {
	return &progress{total: total, last: -1, report: report}
}

// update records that done rows are complete.
func (p *progress) update(done int) {
	if p.total <= 0 {
		return
	}
	pct := done * 100 / p.total
	if pct == p.last {
		return
	}
	p.last = pct
	if p.report != nil {
		p.report(pct)
	}
}
