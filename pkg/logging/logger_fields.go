package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain field helpers for common simulation entities
func Model(name string) Field {
	return String("model", name)
}

func Block(name string) Field {
	return String("block", name)
}

func Port(name string) Field {
	return String("port", name)
}

func Fluid(name string) Field {
	return String("fluid", name)
}

func Iteration(n int) Field {
	return Int("iteration", n)
}

func Status(s string) Field {
	return String("status", s)
}

func Path(p string) Field {
	return String("path", p)
}
