package profile

import (
	"strconv"
	"strings"
)

// Class is the lexical category of a single raw value.
type Class uint8

const (
	ClassString Class = iota
	ClassInt
	ClassFloat
	ClassBool
)

func (c Class) String() string {
	switch c {
	case ClassInt:
		return "integer"
	case ClassFloat:
		return "float"
	case ClassBool:
		return "boolean"
	}
	return "string"
}

// Numeric reports whether values of this class carry numeric content.
func (c Class) Numeric() bool {
	return c == ClassInt || c == ClassFloat
}

// Classify maps a raw value to exactly one lexical category. Callers filter
// empty strings as missing before calling; every non-empty input yields a
// category and there is no error path. Integers are checked before floats so
// integer literals are never double-counted as floats.
func Classify(raw string) Class {
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ClassInt
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		return ClassFloat
	}
	if strings.EqualFold(raw, "true") || strings.EqualFold(raw, "false") {
		return ClassBool
	}
	return ClassString
}
