package logger

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKeyRequestLoggerType struct{}

var contextKeyRequestLogger = &contextKeyRequestLoggerType{}

const (
	requestIDLoggerKey = "requestID"
	identityLoggerKey  = "identity"

	// RequestIDHeader echoes the request ID back to the client.
	RequestIDHeader = "X-Request-ID"
)

// InitLogger sets up the text formatter with full timestamps for all log statements.
func InitLogger(level logrus.Level) {
	formatter := new(logrus.TextFormatter)
	formatter.TimestampFormat = "2006-01-02 15:04:05"
	formatter.FullTimestamp = true
	logrus.SetFormatter(formatter)
	logrus.SetLevel(level)
}

// Default returns a logger without a request ID.
func Default() *logrus.Entry {
	return logrus.NewEntry(logrus.StandardLogger())
}

// requestLogger is shared by every context derived from the request, so fields added deeper in the
// handler chain are visible to outer middleware.
type requestLogger struct {
	mu    sync.RWMutex
	entry *logrus.Entry
}

func (l *requestLogger) get() *logrus.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entry
}

// ContextWithLogger returns a context carrying a request logger. A context that already has one is returned as is.
func ContextWithLogger(ctx context.Context) (context.Context, *logrus.Entry) {
	if ctx == nil {
		ctx = context.Background()
	} else if holder := holderFromContext(ctx); holder != nil {
		return ctx, holder.get()
	}

	holder := &requestLogger{entry: logrus.WithField(requestIDLoggerKey, uuid.New().String())}
	return context.WithValue(ctx, contextKeyRequestLogger, holder), holder.entry
}

// ContextWithLoggerIdentity tags the request logger with the authenticated identity.
func ContextWithLoggerIdentity(ctx context.Context, identity string) (context.Context, *logrus.Entry) {
	ctx, _ = ContextWithLogger(ctx)
	holder := holderFromContext(ctx)

	holder.mu.Lock()
	defer holder.mu.Unlock()
	holder.entry = holder.entry.WithField(identityLoggerKey, identity)
	return ctx, holder.entry
}

// FromContext returns the request logger, or the default logger when the context has none.
func FromContext(ctx context.Context) *logrus.Entry {
	if rlog := loggerFromContext(ctx); rlog != nil {
		return rlog
	}
	return Default()
}

// RequestIDFromContext returns the request ID, or "" when the context has no request logger.
func RequestIDFromContext(ctx context.Context) string {
	rlog := loggerFromContext(ctx)
	if rlog == nil {
		return ""
	}
	id, _ := rlog.Data[requestIDLoggerKey].(string)
	return id
}

// RequestID attaches a request logger to every request and sets the X-Request-ID response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := ContextWithLogger(r.Context())
		w.Header().Set(RequestIDHeader, RequestIDFromContext(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func holderFromContext(ctx context.Context) *requestLogger {
	if ctx == nil {
		return nil
	}
	holder, _ := ctx.Value(contextKeyRequestLogger).(*requestLogger)
	return holder
}

func loggerFromContext(ctx context.Context) *logrus.Entry {
	if holder := holderFromContext(ctx); holder != nil {
		return holder.get()
	}
	return nil
}
