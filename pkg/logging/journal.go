package logging

import (
	"fmt"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"go.uber.org/zap/zapcore"
)

const syslogIdentifier = "win-ime-switch"

type sendFunc func(message string, priority journal.Priority, vars map[string]string) error

// JournalCore is a zapcore.Core writing entries to the systemd journal with
// structured fields as journal fields.
type JournalCore struct {
	zapcore.LevelEnabler
	fields map[string]string
	send   sendFunc
}

func NewJournalCore(enab zapcore.LevelEnabler) *JournalCore {
	return newJournalCore(enab, journal.Send)
}

func newJournalCore(enab zapcore.LevelEnabler, send sendFunc) *JournalCore {
	return &JournalCore{
		LevelEnabler: enab,
		fields:       map[string]string{"SYSLOG_IDENTIFIER": syslogIdentifier},
		send:         send,
	}
}

func (c *JournalCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &JournalCore{
		LevelEnabler: c.LevelEnabler,
		fields:       make(map[string]string, len(c.fields)+len(fields)),
		send:         c.send,
	}
	for k, v := range c.fields {
		clone.fields[k] = v
	}
	addFields(clone.fields, fields)

	return clone
}

func (c *JournalCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *JournalCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	vars := make(map[string]string, len(c.fields)+len(fields)+1)
	for k, v := range c.fields {
		vars[k] = v
	}
	addFields(vars, fields)
	if ent.LoggerName != "" {
		vars["LOGGER"] = ent.LoggerName
	}

	if err := c.send(ent.Message, priority(ent.Level), vars); err != nil {
		return fmt.Errorf("journal send: %w", err)
	}

	return nil
}

func (c *JournalCore) Sync() error {
	return nil
}

func addFields(dst map[string]string, fields []zapcore.Field) {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	for k, v := range enc.Fields {
		dst[fieldName(k)] = fmt.Sprint(v)
	}
}

// fieldName maps a zap key to a valid journal field name: uppercase ASCII
// letters, digits and underscores, not starting with an underscore.
func fieldName(key string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, key)

	name = strings.TrimLeft(name, "_")
	if name == "" {
		return "FIELD"
	}
	return name
}

func priority(level zapcore.Level) journal.Priority {
	switch level {
	case zapcore.DebugLevel:
		return journal.PriDebug
	case zapcore.InfoLevel:
		return journal.PriInfo
	case zapcore.WarnLevel:
		return journal.PriWarning
	case zapcore.ErrorLevel:
		return journal.PriErr
	default:
		return journal.PriCrit
	}
}
