package trace

import (
	"fmt"
	"strings"
)

// Level controls how fine-grained the trace is.
type Level uint8

const (
	LevelOff   Level = iota
	LevelError       // только ошибки конвейера
	LevelFile        // команда и файлы
	LevelStage       // плюс стадии
	LevelExpr        // плюс каждый токен, дерево и значение
)

var levelNames = [...]string{"off", "error", "file", "stage", "expr"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts a level name in any case; the empty string is off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if s == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("unknown trace level %q (want %s)", s, strings.Join(levelNames[:], "|"))
}

// Admits reports whether events of scope pass at level l.
func (l Level) Admits(scope Scope) bool {
	switch {
	case l == LevelOff:
		return false
	case scope == ScopeError:
		return true
	case l == LevelError:
		return false
	}
	// лестницы уровней и scope совпадают начиная с file
	return uint8(scope) <= uint8(l)
}
