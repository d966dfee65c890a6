package common

import (
	"errors"
	"sync"
	"time"
)

// NoticeTTL is how long a transient notice stays visible.
const NoticeTTL = 3 * time.Second

// NoticeLevel classifies a user-visible notice.
type NoticeLevel int

// Notice levels.
const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

func (l NoticeLevel) String() string {
	switch l {
	case NoticeSuccess:
		return "success"
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient message for the user.
type Notice struct {
	Message string
	Level   NoticeLevel
}

// Notifier is the user-visible error channel.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) { f(n) }

// Discard drops every notice.
var Discard Notifier = NotifierFunc(func(Notice) {})

// reportedError marks an error whose notice has already been shown.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// Report emits exactly one notice and one log entry for err and returns it
// marked as reported. Reporting an already reported error is a no-op.
func Report(n Notifier, action string, err error) error {
	if err == nil || IsReported(err) {
		return err
	}
	if n == nil {
		n = Discard
	}

	level := NoticeError
	if errors.Is(err, ErrPersistence) {
		level = NoticeWarning
	}
	n.Notify(Notice{Level: level, Message: UserMessage(err, "Error "+action)})

	fields := Fields{"action": action}
	if kind := KindOf(err); kind != nil {
		fields["kind"] = kind.Error()
	}
	LogError(err, "Action failed", fields)

	return reportedError{err}
}

// IsReported reports whether err already produced its user notice.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// NoticeRecorder collects notices, mostly for tests and headless runs.
type NoticeRecorder struct {
	notices []Notice
	mu      sync.Mutex
}

// Notify records n.
func (r *NoticeRecorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of everything recorded so far.
func (r *NoticeRecorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Reset forgets recorded notices.
func (r *NoticeRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}
