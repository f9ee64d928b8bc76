// Package report accumulates the warnings and errors raised during a run
// and decides the run outcome.
package report

import (
	"fmt"
)

// Severity says whether a message affects the run outcome.
type Severity int

const (
	// Advisory messages are printed but leave the outcome clean.
	Advisory Severity = iota
	// Failure messages flip the outcome to failed.
	Failure
)

func (s Severity) String() string {
	if s == Failure {
		return "failure"
	}
	return "advisory"
}

// Entry is one recorded message.
type Entry struct {
	Severity Severity
	Message  string
}

// Report collects entries in the order they were raised. The zero value
// is ready to use.
type Report struct {
	entries []Entry
	failed  bool
	flushed int
}

// New returns an empty report.
func New() *Report {
	return &Report{}
}

// Advise records a message that does not fail the run.
func (r *Report) Advise(format string, args ...any) {
	r.add(Advisory, fmt.Sprintf(format, args...))
}

// Fail records a message and marks the run failed.
func (r *Report) Fail(format string, args ...any) {
	r.add(Failure, fmt.Sprintf(format, args...))
}

// Record adds a message with an explicit severity.
func (r *Report) Record(sev Severity, format string, args ...any) {
	r.add(sev, fmt.Sprintf(format, args...))
}

func (r *Report) add(sev Severity, msg string) {
	r.entries = append(r.entries, Entry{Severity: sev, Message: msg})
	if sev == Failure {
		r.failed = true
	}
}

// Failed reports whether any failure was recorded.
func (r *Report) Failed() bool {
	return r.failed
}

// Entries returns every recorded entry.
func (r *Report) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Messages returns the text of every recorded entry.
func (r *Report) Messages() []string {
	msgs := make([]string, len(r.entries))
	for i, e := range r.entries {
		msgs[i] = e.Message
	}
	return msgs
}

// Pending returns the entries recorded since the last call to Pending.
func (r *Report) Pending() []Entry {
	pending := append([]Entry(nil), r.entries[r.flushed:]...)
	r.flushed = len(r.entries)
	return pending
}

// ExitCode maps the outcome to a process exit status.
func (r *Report) ExitCode() int {
	if r.failed {
		return ExitFailure
	}
	return ExitSuccess
}

// Process exit statuses.
const (
	ExitSuccess = 0
	ExitFailure = -1
)
