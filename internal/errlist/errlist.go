package errlist

import "fmt"

// List accumulates validation messages in encounter order. Stages append and
// keep going instead of failing fast, so a single run reports every defect.
// A non-empty list at the end of a run is the sole failure signal.
type List struct {
	msgs []string
}

// Add appends a message to the list.
func (l *List) Add(msg string) {
	l.msgs = append(l.msgs, msg)
}

// Addf appends a formatted message to the list.
func (l *List) Addf(format string, args ...any) {
	l.msgs = append(l.msgs, fmt.Sprintf(format, args...))
}

// Empty reports whether no message has been recorded.
func (l *List) Empty() bool {
	return len(l.msgs) == 0
}

// Len returns the number of recorded messages.
func (l *List) Len() int {
	return len(l.msgs)
}

// Messages returns the recorded messages in encounter order.
func (l *List) Messages() []string {
	out := make([]string, len(l.msgs))
	copy(out, l.msgs)
	return out
}
