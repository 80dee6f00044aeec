package logger

// Field is a structured key/value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field { return Field{Key: key, Value: value} }

// Err labels err under the "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is what packages in this module log through. BasicLogger is the
// built-in implementation; anything else can be adapted to it.
type Logger interface {
	With(fields ...Field) Logger
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Nop discards everything.
type Nop struct{}

var _ Logger = (*Nop)(nil)

func (n *Nop) With(...Field) Logger   { return n }
func (n *Nop) Debug(string, ...Field) {}
func (n *Nop) Info(string, ...Field)  {}
func (n *Nop) Warn(string, ...Field)  {}
func (n *Nop) Error(string, ...Field) {}
