package main

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/petems/goggles/internal/hotkey"
)

func TestStartupMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "claimed",
			err:  fmt.Errorf("start: %w", &hotkey.RegistrationError{ID: 1, Code: syscall.Errno(1409), Err: syscall.Errno(1409)}),
			want: "Ctrl+Win+F11 is already in use by another program.",
		},
		{
			name: "other",
			err:  errors.New("boom"),
			want: "Could not register Ctrl+Win+F11: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := startupMessage("Ctrl+Win+F11", tt.err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
