package bot

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

var ErrNoArgs = errors.New("not enough arguments")

// Args walks the arguments following a command name. Each Single call
// consumes one argument.
type Args struct {
	raw  string
	rest string
}

func NewArgs(s string) *Args {
	s = strings.TrimSpace(s)
	return &Args{raw: s, rest: s}
}

// Single consumes the next whitespace separated argument.
func (a *Args) Single() (string, error) {
	if a.Empty() {
		return "", ErrNoArgs
	}
	i := strings.IndexFunc(a.rest, unicode.IsSpace)
	if i < 0 {
		arg := a.rest
		a.rest = ""
		return arg, nil
	}
	arg := a.rest[:i]
	a.rest = strings.TrimLeftFunc(a.rest[i:], unicode.IsSpace)
	return arg, nil
}

// SingleQuoted consumes the next argument, which may be wrapped in double
// quotes to include whitespace. An unterminated quote runs to the end.
func (a *Args) SingleQuoted() (string, error) {
	if a.Empty() {
		return "", ErrNoArgs
	}
	if !strings.HasPrefix(a.rest, `"`) {
		return a.Single()
	}
	body := a.rest[1:]
	end := strings.IndexByte(body, '"')
	if end < 0 {
		a.rest = ""
		return body, nil
	}
	arg := body[:end]
	a.rest = strings.TrimLeftFunc(body[end+1:], unicode.IsSpace)
	return arg, nil
}

func (a *Args) SingleUint() (uint64, error) {
	arg, err := a.Single()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "%q is not a positive number", arg)
	}
	return n, nil
}

// Rest returns everything not consumed yet.
func (a *Args) Rest() string {
	return a.rest
}

// Raw returns the arguments as they were received.
func (a *Args) Raw() string {
	return a.raw
}

// Len counts the remaining whitespace separated arguments.
func (a *Args) Len() int {
	return len(strings.Fields(a.rest))
}

func (a *Args) Empty() bool {
	return a.rest == ""
}
