package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                Code = 1000
	LexUnexpectedCharacter Code = 1001

	// Синтаксические
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynUnexpectedEndOfInput Code = 2002

	// Вычисление
	EvalInfo               Code = 3000
	EvalInvalidNumber      Code = 3001
	EvalArithmeticOverflow Code = 3002

	// Ввод
	IOInvalidEncoding Code = 4001
	IOLoadFileError   Code = 4002

	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:             "Unknown error",
		LexInfo:                 "Lexical information",
		LexUnexpectedCharacter:  "Unexpected character",
		SynInfo:                 "Syntax information",
		SynUnexpectedToken:      "Unexpected token",
		SynUnexpectedEndOfInput: "Reached end of input mid-expression",
		EvalInfo:                "Evaluation information",
		EvalInvalidNumber:       "Number could not be evaluated",
		EvalArithmeticOverflow:  "Arithmetic overflow",
		IOInvalidEncoding:       "Invalid encoding",
		IOLoadFileError:         "I/O load file error",
		ObsTimings:              "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EVL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
