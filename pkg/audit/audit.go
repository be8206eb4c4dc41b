package audit

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Structured data ids. 32473 is the private enterprise number reserved for
// documentation (RFC 5612).
const (
	PEN         = 32473
	SDIDAuth    = "auth@32473"
	SDIDSubject = "subject@32473"
	SDIDAction  = "action@32473"
	SDIDClient  = "client@32473"
)

// AppName is the RFC5424 APP-NAME of every record.
const AppName = "ppa"

// Syslog facilities. Events that touch credentials use authpriv.
const (
	FacilityAuth     = 4
	FacilityAuthPriv = 10
)

// Severity is the RFC5424 severity of a record.
type Severity int

const (
	SeverityEmergency Severity = iota
	SeverityAlert
	SeverityCritical
	SeverityError
	SeverityWarning
	SeverityNotice
	SeverityInfo
	SeverityDebug
)

// Event is one auditable portal operation.
type Event interface {
	MessageID() string
	Message() string
	Severity() Severity
	Facility() int
	StructuredData() map[string]map[string]string
}

// Logger writes events as RFC5424 lines.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	hostname string
	pid      int
	now      func() time.Time
}

// NewLogger returns a Logger writing to stdout.
func NewLogger() *Logger {
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "-"
	}
	return &Logger{
		writer:   os.Stdout,
		hostname: hostname,
		pid:      os.Getpid(),
		now:      time.Now,
	}
}

// SetWriter sets the output writer for the logger
func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

// Format renders event as
// <PRI>1 TIMESTAMP HOSTNAME APP-NAME PROCID MSGID SD MSG
func (l *Logger) Format(event Event) string {
	pri := event.Facility()*8 + int(event.Severity())
	return fmt.Sprintf("<%d>1 %s %s %s %d %s %s %s\n",
		pri,
		l.now().UTC().Format("2006-01-02T15:04:05.000Z"),
		l.hostname,
		AppName,
		l.pid,
		event.MessageID(),
		formatStructuredData(event.StructuredData()),
		event.Message(),
	)
}

// Log writes one event.
func (l *Logger) Log(event Event) {
	line := l.Format(event)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.writer, line)
}

// formatStructuredData renders [sdid k="v" ...] elements, ids and params
// sorted so identical events give identical lines.
func formatStructuredData(sd map[string]map[string]string) string {
	if len(sd) == 0 {
		return "-"
	}

	ids := make([]string, 0, len(sd))
	for id := range sd {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		params := sd[id]
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("[")
		b.WriteString(id)
		for _, k := range keys {
			b.WriteString(" ")
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(escapeSDValue(params[k]))
		}
		b.WriteString("]")
	}
	return b.String()
}

// escapeSDValue quotes a param value, escaping \ " and ] (RFC5424 6.3.3).
func escapeSDValue(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `]`, `\]`)
	return `"` + r.Replace(value) + `"`
}

// DefaultLogger receives every event passed to Log.
var DefaultLogger = NewLogger()

var (
	enabled     atomic.Bool
	enabledOnce sync.Once

	storeMu      sync.RWMutex
	defaultStore *Store
)

// IsEnabled reports whether Log records events. It starts from
// PPA_AUDIT_ENABLED and defaults to true.
func IsEnabled() bool {
	enabledOnce.Do(func() {
		v := strings.ToLower(os.Getenv("PPA_AUDIT_ENABLED"))
		enabled.Store(v != "false" && v != "0" && v != "no")
	})
	return enabled.Load()
}

// SetEnabled turns audit logging on or off.
func SetEnabled(on bool) {
	enabledOnce.Do(func() {})
	enabled.Store(on)
}

// UseStore persists every logged event through s. A nil s disables
// persistence.
func UseStore(s *Store) {
	storeMu.Lock()
	defer storeMu.Unlock()
	defaultStore = s
}

// Log records event on DefaultLogger and, when a store is set, in the
// database. Persistence failures are reported on stderr and never reach the
// caller.
func Log(event Event) {
	if !IsEnabled() {
		return
	}
	DefaultLogger.Log(event)

	storeMu.RLock()
	s := defaultStore
	storeMu.RUnlock()
	if s == nil {
		return
	}
	if err := s.Save(event); err != nil {
		fmt.Fprintf(os.Stderr, "audit: failed to save event: %v\n", err)
	}
}
