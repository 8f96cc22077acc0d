package input

import (
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	reValueName = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func newUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

// Args is the positional part of a command line: a request file followed by
// NAME=VALUE items.
type Args struct {
	File   string
	Values Values
}

// ParseArgs parses positional arguments. A value item may appear several
// times, the last one wins.
func ParseArgs(args []string) (*Args, error) {
	if len(args) == 0 {
		return nil, newUsageError("FILE is required")
	}

	a := Args{File: args[0]}
	for _, arg := range args[1:] {
		value, err := parseValueItem(arg)
		if err != nil {
			return nil, err
		}
		a.Values = a.Values.Set(value.Name, value.Value)
	}
	return &a, nil
}

func parseValueItem(s string) (Value, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return Value{}, newUsageError("value item must be NAME=VALUE: " + s)
	}
	if !reValueName.MatchString(name) {
		return Value{}, errors.Errorf("invalid value name: %s", name)
	}

	// NAME=@path reads the value from a file
	if strings.HasPrefix(value, "@") {
		data, err := os.ReadFile(value[1:])
		if err != nil {
			return Value{}, errors.Wrapf(err, "reading value of '%s'", name)
		}
		value = strings.TrimSuffix(string(data), "\n")
	}
	return Value{Name: name, Value: value}, nil
}
