// internal/result/result_test.go
package result

import (
	"errors"
	"testing"
)

type recordingLogger struct {
	errs []string
}

func (r *recordingLogger) Error(msg string) {
	r.errs = append(r.errs, msg)
}

func TestOK(t *testing.T) {
	r := OK()
	if !r.IsOk() {
		t.Fatalf("OK().IsOk() = false")
	}
	if r.Err() != nil {
		t.Fatalf("OK().Err() = %v", r.Err())
	}
}

func TestEmptyAndZeroAreFailures(t *testing.T) {
	if Empty().IsOk() {
		t.Fatalf("Empty() must be a failure")
	}
	if Empty().String() != "<err>" {
		t.Fatalf("Empty().String() = %q", Empty().String())
	}

	var zero Result
	if zero.IsOk() {
		t.Fatalf("zero Result must be a failure")
	}
}

func TestFail(t *testing.T) {
	r := Fail("x")
	if r.IsOk() {
		t.Fatalf("Fail must not be ok")
	}
	if r.String() != "x" {
		t.Fatalf("String() = %q want %q", r.String(), "x")
	}
}

func TestWrap(t *testing.T) {
	r := Wrap("outer", Fail("inner"))
	if r.String() != "outer: inner" {
		t.Fatalf("String() = %q", r.String())
	}
	if r.IsOk() {
		t.Fatalf("wrapped failure must stay a failure")
	}

	nested := Wrap("boot", Wrap("cell", Fail("read")))
	if nested.String() != "boot: cell: read" {
		t.Fatalf("nested String() = %q", nested.String())
	}
}

func TestWrap_OKIsRejected(t *testing.T) {
	r := Wrap("outer", OK())
	if r.IsOk() {
		t.Fatalf("wrapping ok must not produce ok")
	}
	if r.String() != "outer: "+ErrWrapOK.Error() {
		t.Fatalf("String() = %q", r.String())
	}
}

func TestFromError(t *testing.T) {
	if !FromError(nil).IsOk() {
		t.Fatalf("FromError(nil) must be ok")
	}

	r := FromError(errors.New("disk gone"))
	if r.IsOk() || r.String() != "disk gone" {
		t.Fatalf("FromError = %+v", r)
	}
	if r.Err() == nil || r.Err().Error() != "disk gone" {
		t.Fatalf("Err() = %v", r.Err())
	}
}

func TestLogIfError(t *testing.T) {
	l := &recordingLogger{}

	LogIfError(l, OK())
	if len(l.errs) != 0 {
		t.Fatalf("ok result must not log")
	}

	LogIfError(l, Wrap("outer", Fail("inner")))
	if len(l.errs) != 1 || l.errs[0] != "outer: inner" {
		t.Fatalf("unexpected log %v", l.errs)
	}

	// nil logger is a no-op
	LogIfError(nil, Fail("x"))
}
