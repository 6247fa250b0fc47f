package log

import (
	"context"
	"log/slog"

	gberrors "github.com/YuminosukeSato/gboost/pkg/errors"
	"github.com/cockroachdb/errors"
)

// ErrFmtHandler decorates records that carry an ErrAttrKey attribute with the
// error's cockroachdb stack trace and, for gboost error kinds, an error code.
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps handler with an ErrFmtHandler.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{
		handler: handler,
	}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var found error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == ErrAttrKey {
			if err, ok := attr.Value.Any().(error); ok {
				found = err
			}
			return false
		}
		return true
	})
	if found != nil {
		if st := extractStacktrace(found); st != "" {
			r.AddAttrs(slog.String(StacktraceAttrKey, st))
		}
		if code := ErrorCode(found); code != "" {
			r.AddAttrs(slog.String(ErrorCodeKey, code))
		}
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

// ErrorCode maps the outermost gboost error kind in err's chain to one of the
// Error* attribute values, or "" for other errors.
func ErrorCode(err error) string {
	var (
		iter *gberrors.IterationError
		dim  *gberrors.DimensionError
		inv  *gberrors.InvalidInputError
	)
	switch {
	case errors.As(err, &iter):
		return ErrorIteration
	case errors.As(err, &dim):
		return ErrorDimensionMismatch
	case errors.As(err, &inv):
		return ErrorInvalidInput
	}
	return ""
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
