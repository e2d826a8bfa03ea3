// internal/result/result.go
package result

import "errors"

// ErrWrapOK marks an attempt to chain context onto a successful Result.
// Chaining is defined for failures only.
var ErrWrapOK = errors.New("result: cannot wrap ok result")

const (
	okMessage    = "ok"
	emptyMessage = "<err>"
)

// Result is an outcome plus a human-readable message.
// The zero value is a failure. Results are immutable.
type Result struct {
	message string
	ok      bool
}

// OK is the success value.
func OK() Result {
	return Result{message: okMessage, ok: true}
}

// Empty is an unspecified failure.
func Empty() Result {
	return Result{message: emptyMessage}
}

// Fail is a failure with msg.
func Fail(msg string) Result {
	return Result{message: msg}
}

// Wrap prefixes a failure with context: "context: inner".
// inner must be a failure; wrapping an ok Result yields a failure
// carrying ErrWrapOK instead of silently guessing a meaning.
func Wrap(context string, inner Result) Result {
	if inner.ok {
		return Result{message: context + ": " + ErrWrapOK.Error()}
	}
	return Result{message: context + ": " + inner.message}
}

// FromError converts a Go error; nil is OK.
func FromError(err error) Result {
	if err == nil {
		return OK()
	}
	return Fail(err.Error())
}

func (r Result) IsOk() bool {
	return r.ok
}

func (r Result) String() string {
	return r.message
}

// Err returns nil for success, otherwise an error with the message.
func (r Result) Err() error {
	if r.ok {
		return nil
	}
	return errors.New(r.message)
}

// ErrorLogger is the sink LogIfError reports to.
type ErrorLogger interface {
	Error(msg string)
}

// LogIfError records a failure at error severity and does nothing for success.
// It never alters control flow.
func LogIfError(l ErrorLogger, r Result) {
	if r.IsOk() || l == nil {
		return
	}
	l.Error(r.String())
}
