package lib

import (
	"errors"
	"fmt"
	"os"
)

// ExitCoder is implemented by errors that carry their own process exit code.
type ExitCoder interface {
	ExitCode() int
}

// Exit prints the error and exits the program with code 1, or with the code
// carried by err when it implements ExitCoder.
func Exit(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(Code(err))
}

// Code returns the exit code for err: 0 for nil, the ExitCoder value when
// present, 1 otherwise.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}
