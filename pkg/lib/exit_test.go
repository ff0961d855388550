package lib

import (
	"errors"
	"fmt"
	"testing"
)

type codeErr int

func (c codeErr) Error() string { return fmt.Sprintf("code %d", int(c)) }
func (c codeErr) ExitCode() int { return int(c) }

func TestCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{errors.New("plain"), 1},
		{codeErr(2), 2},
		{fmt.Errorf("wrapped: %w", codeErr(3)), 3},
	}
	for _, tc := range cases {
		if got := Code(tc.err); got != tc.want {
			t.Fatalf("Code(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
