package base

import (
	"bytes"
	"flag"
	"fmt"
	"strings"
)

// FlagSet wraps flag.FlagSet with help output in the CLI's style.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet returns a new FlagSet.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

// Help returns the formatted flag documentation.
func (f *FlagSet) Help() string {
	var out bytes.Buffer

	fmt.Fprintf(&out, "\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&out, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&out, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&out, "\n      %s\n", fl.Usage)
	})

	return strings.TrimRight(out.String(), "\n")
}

// StringMapValue collects repeated key=value flags.
type StringMapValue map[string]string

func (m StringMapValue) String() string {
	pairs := make([]string, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (m StringMapValue) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	m[k] = v
	return nil
}
