package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotFound, ExitUser),
			want: "not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading profile: %w", ErrValidation), ExitUser),
			want: "loading profile: validation failed",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
		{
			name: "success code with error",
			err:  NewExitError(errors.New("unexpected"), ExitSuccess),
			want: "unexpected",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(ErrNotFound, ExitUser),
			wantTarget: ErrNotFound,
			wantIs:     true,
		},
		{
			name:       "unwrap through wrapped error",
			err:        NewExitError(fmt.Errorf("registering stack: %w", ErrDuplicateName), ExitUser),
			wantTarget: ErrDuplicateName,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(ErrNotFound, ExitUser),
			wantTarget: ErrActiveResource,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: ErrNotFound,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestExitError_As(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantAs   bool
	}{
		{
			name:     "direct ExitError",
			err:      NewExitError(ErrNotFound, ExitUser),
			wantCode: ExitUser,
			wantAs:   true,
		},
		{
			name:     "wrapped ExitError",
			err:      fmt.Errorf("command failed: %w", NewExitError(ErrValidation, ExitUser)),
			wantCode: ExitUser,
			wantAs:   true,
		},
		{
			name:     "ExitSystem code",
			err:      NewExitError(ErrProvisioning, ExitSystem),
			wantCode: ExitSystem,
			wantAs:   true,
		},
		{
			name:     "non-ExitError",
			err:      ErrNotFound,
			wantCode: 0,
			wantAs:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exitErr *ExitError
			gotAs := errors.As(tt.err, &exitErr)
			if gotAs != tt.wantAs {
				t.Errorf("errors.As() = %v, want %v", gotAs, tt.wantAs)
			}
			if gotAs && exitErr.Code != tt.wantCode {
				t.Errorf("ExitError.Code = %d, want %d", exitErr.Code, tt.wantCode)
			}
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "ErrNotFound",
			err:     ErrNotFound,
			wantMsg: "not found",
		},
		{
			name:    "ErrDuplicateName",
			err:     ErrDuplicateName,
			wantMsg: "name already registered",
		},
		{
			name:    "ErrActiveResource",
			err:     ErrActiveResource,
			wantMsg: "resource is active",
		},
		{
			name:    "ErrValidation",
			err:     ErrValidation,
			wantMsg: "validation failed",
		},
		{
			name:    "ErrProvisioning",
			err:     ErrProvisioning,
			wantMsg: "provisioning failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("%s.Error() = %q, want %q", tt.name, got, tt.wantMsg)
			}
		})
	}
}

func TestWrapfPreservesSentinel(t *testing.T) {
	err := Wrapf(ErrActiveResource, "profile %q is the globally active profile", "default")
	if !errors.Is(err, ErrActiveResource) {
		t.Error("errors.Is() should match ErrActiveResource through Wrapf")
	}
}

func TestWrapfRendersEntityAndReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not found names the profile",
			err:  Wrapf(ErrNotFound, "profile %q does not exist", "ghost"),
			want: `profile "ghost" does not exist: not found`,
		},
		{
			name: "duplicate names the stack",
			err:  Wrapf(ErrDuplicateName, "stack %q is already registered", "local"),
			want: `stack "local" is already registered: name already registered`,
		},
		{
			name: "validation names the field",
			err:  Wrapf(ErrValidation, "profile %q uses store type %q which requires a store URL", "staging", "rest"),
			want: `profile "staging" uses store type "rest" which requires a store URL: validation failed`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmt.Sprintf("%v", tt.err); got != tt.want {
				t.Errorf("rendered message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkPreservesBothChains(t *testing.T) {
	cause := errors.New("sqlite: unable to open database file")
	err := Mark(Wrap(cause, "provisioning metadata store"), ErrProvisioning)

	if !errors.Is(err, ErrProvisioning) {
		t.Error("errors.Is() should match ErrProvisioning mark")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() should still match the underlying cause")
	}
}

func TestErrorWrappingChain(t *testing.T) {
	baseErr := ErrValidation
	wrappedOnce := fmt.Errorf("checking store url: %w", baseErr)
	wrappedTwice := fmt.Errorf("creating profile 'staging': %w", wrappedOnce)
	exitErr := NewExitError(wrappedTwice, ExitUser)

	if !errors.Is(exitErr, ErrValidation) {
		t.Error("errors.Is() should find ErrValidation through wrapping chain")
	}

	var target *ExitError
	if !errors.As(exitErr, &target) {
		t.Error("errors.As() should find ExitError")
	}
	if target.Code != ExitUser {
		t.Errorf("ExitError.Code = %d, want %d", target.Code, ExitUser)
	}

	want := "creating profile 'staging': checking store url: validation failed"
	if got := exitErr.Error(); got != want {
		t.Errorf("ExitError.Error() = %q, want %q", got, want)
	}
}

func TestNewConstructors(t *testing.T) {
	t.Run("NewUserError", func(t *testing.T) {
		err := errors.New("user error")
		e := NewUserError(err, "check input")
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
		if e.Suggestion != "check input" {
			t.Errorf("Suggestion = %q, want 'check input'", e.Suggestion)
		}
	})

	t.Run("NewSystemError", func(t *testing.T) {
		err := errors.New("system error")
		e := NewSystemError(err, "check logs")
		if e.Code != ExitSystem {
			t.Errorf("Code = %d, want %d", e.Code, ExitSystem)
		}
		if e.Suggestion != "check logs" {
			t.Errorf("Suggestion = %q, want 'check logs'", e.Suggestion)
		}
	})
}
