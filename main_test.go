package main

import (
	"errors"
	"testing"

	"github.com/go-repo/assert"

	"httpstat/curl"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitCode(&curl.ExitError{Code: 6, Stderr: "could not resolve"}), 6)
	assert.Equal(t, exitCode(&curl.ExitError{Code: 28}), 28)
	assert.Equal(t, exitCode(errors.New("disallowed flag")), 1)
	// A zero exit code inside an ExitError still maps to a failure.
	assert.Equal(t, exitCode(&curl.ExitError{Code: 0}), 1)
}
