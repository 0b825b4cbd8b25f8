package config

import (
	"errors"
	"fmt"
)

// ErrMissing is wrapped by every required-setting check.
var ErrMissing = errors.New("missing required env")

func RequireNonEmpty(value, envName string) error {
	if value == "" {
		return fmt.Errorf("%w %s", ErrMissing, envName)
	}
	return nil
}

func RequireNonEmptyBytes(value []byte, envName string) error {
	if len(value) == 0 {
		return fmt.Errorf("%w %s", ErrMissing, envName)
	}
	return nil
}
