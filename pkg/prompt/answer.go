// Package prompt implements the yes/no confirmation gates used by steps that
// need an operator decision.
package prompt

import (
	"regexp"
	"strings"
)

// Answer is the interpretation of one line of operator input.
type Answer int

const (
	Invalid Answer = iota
	Affirmative
	Negative
)

func (a Answer) String() string {
	switch a {
	case Affirmative:
		return "affirmative"
	case Negative:
		return "negative"
	default:
		return "invalid"
	}
}

var (
	affirmativePattern = regexp.MustCompile(`(?i)^y(es)?$`)
	negativePattern    = regexp.MustCompile(`(?i)^no?$`)
)

// Interpret classifies raw input. Surrounding whitespace is ignored.
func Interpret(input string) Answer {
	s := strings.TrimSpace(input)
	switch {
	case affirmativePattern.MatchString(s):
		return Affirmative
	case negativePattern.MatchString(s):
		return Negative
	default:
		return Invalid
	}
}
