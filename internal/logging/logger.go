// Package logging is the structured logging interface used by the book and
// its collaborators. The CLI backs it with logrus; tests use MockLogger.
package logging

// Logger is implemented by LogrusAdapter and MockLogger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Cell returns the table and row fields identifying one edited cell row.
func Cell(table string, row int) []Field {
	return []Field{F(FieldTable, table), F(FieldRow, row)}
}
