package logger

import (
	"strings"

	"go.uber.org/zap"
)

type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

func New(mode string) (*Logger, error) {
	// Anything but an explicit development mode gets the JSON production
	// encoder at info level.
	cfg := zap.NewProductionConfig()
	if m := strings.ToLower(strings.TrimSpace(mode)); m == "dev" || m == "development" {
		cfg = zap.NewDevelopmentConfig()
	}
	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Errorw(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Fatal(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Fatalw(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(sanitizeKVs(keysAndValues)...)}
}

// Keys whose values never reach the log. Matching is by substring on the
// lower-cased key, so "jwtToken" and "X-Authorization" are covered.
var redactKeys = []string{"token", "authorization", "password", "secret", "phone"}

func sanitizeKVs(kv []interface{}) []interface{} {
	if len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key, _ := kv[i].(string)
		out = append(out, kv[i], sanitizeValue(strings.ToLower(strings.TrimSpace(key)), kv[i+1]))
	}
	return out
}

func sanitizeValue(key string, val interface{}) interface{} {
	for _, k := range redactKeys {
		if strings.Contains(key, k) {
			return "[REDACTED]"
		}
	}
	s, ok := val.(string)
	if !ok {
		return val
	}
	switch {
	case looksLikeJWT(s):
		return "[REDACTED]"
	case strings.Contains(key, "email"):
		return maskEmail(s)
	case strings.HasPrefix(s, "mongodb://") || strings.HasPrefix(s, "mongodb+srv://"):
		return maskURICredentials(s)
	}
	return s
}

// maskEmail keeps the first character of the local part and the domain:
// "retailer1@retail.com" becomes "r***@retail.com".
func maskEmail(s string) string {
	at := strings.LastIndex(s, "@")
	if at <= 0 {
		return "[REDACTED]"
	}
	return s[:1] + "***" + s[at:]
}

// maskURICredentials hides the user info of a connection string.
func maskURICredentials(s string) string {
	scheme := strings.Index(s, "://") + len("://")
	at := strings.LastIndex(s, "@")
	if at < scheme {
		return s
	}
	return s[:scheme] + "***" + s[at:]
}

func looksLikeJWT(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 20 || !strings.HasPrefix(s, "eyJ") {
		return false
	}
	return strings.Count(s, ".") == 2
}
