package trace

import "time"

// Kind says what an event marks.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
	KindBeat
)

var kindNames = [...]string{KindBegin: "begin", KindEnd: "end", KindPoint: "point", KindBeat: "beat"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the unit of work an event belongs to, from the whole command
// down to a single expression. A level admits every scope up to its own.
type Scope uint8

const (
	ScopeRun   Scope = iota + 1 // одна команда CLI
	ScopeFile                   // один входной файл
	ScopeStage                  // tokenize, parse или eval над файлом
	ScopeExpr                   // один токен, дерево или значение
	ScopeError                  // ошибка конвейера, видна на любом уровне кроме off
)

var scopeNames = [...]string{ScopeRun: "run", ScopeFile: "file", ScopeStage: "stage", ScopeExpr: "expr", ScopeError: "error"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Attr is a key=value annotation. Attrs keep the order they were added in.
type Attr struct {
	Key   string
	Value string
}

// Event is one trace record.
type Event struct {
	Time   time.Time
	Seq    uint64
	RunID  string
	Kind   Kind
	Scope  Scope
	Span   uint64 // 0 у точек и heartbeat
	Parent uint64
	Name   string // стадия, путь файла или имя команды
	Detail string
	Attrs  []Attr
}
