package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// extensionValue is a pflag.Value for the filename extension: a leading dot
// is tolerated, path separators and whitespace are rejected.
type extensionValue struct {
	value *string
}

var _ pflag.Value = extensionValue{}

func (e extensionValue) String() string {
	if e.value == nil {
		return ""
	}
	return *e.value
}

func (e extensionValue) Set(s string) error {
	s = strings.TrimPrefix(strings.TrimSpace(s), ".")
	if s == "" {
		return fmt.Errorf("extension must not be empty")
	}
	if strings.ContainsAny(s, "/\\ \t") {
		return fmt.Errorf("invalid extension %q", s)
	}
	*e.value = s
	return nil
}

func (e extensionValue) Type() string {
	return "extension"
}
