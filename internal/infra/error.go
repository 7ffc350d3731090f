package infra

import (
	"errors"
	"log/slog"

	"storefront-core/internal/pkg/errs"
)

type BackendErrorKind string

type BackendError struct {
	Kind BackendErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e BackendError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e BackendError) Unwrap() error {
	return e.err
}

// WrapBackendErr logs the failure and returns a BackendError marked with the
// matching domain kind, so callers can test it with errs.Is.
func WrapBackendErr(slogger *slog.Logger, kind BackendErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	slogger.Warn("Backend error: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	var wrapped error = BackendError{Kind: kind, msg: msg, err: err}
	switch kind {
	case KindUnavailable:
		wrapped = errs.Mark(wrapped, errs.ErrBackendUnavailable)
	case KindMalformed:
		wrapped = errs.Mark(wrapped, errs.ErrMalformedResponse)
	}
	return wrapped
}

func IsKind(err error, kind BackendErrorKind) bool {
	var e BackendError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Backend error kinds
const (
	KindUnavailable BackendErrorKind = "UNAVAILABLE"
	KindRejected    BackendErrorKind = "REJECTED"
	KindTransport   BackendErrorKind = "TRANSPORT"
	KindMalformed   BackendErrorKind = "MALFORMED"
)
