package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odvcencio/placard/pkg/errors"
)

func TestOutcomeExitCode(t *testing.T) {
	tests := []struct {
		name string
		o    Outcome
		want int
	}{
		{"confirmed_first_button", Outcome{State: StateConfirmed}, 0},
		{"confirmed_second_button", Outcome{State: StateConfirmed, Button: 1}, 1},
		{"confirmed_third_button", Outcome{State: StateConfirmed, Button: 2}, 2},
		{"extra_buttons_capped", Outcome{State: StateConfirmed, Button: 7}, 3},
		{"cancelled", Cancelled(), 1},
		{"timed_out", Outcome{State: StateTimedOut}, 5},
		{"closed", Outcome{State: StateClosed}, 255},
		{"errored", Errored(errors.New(errors.ErrCodeProtocol, "boom")), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.o.ExitCode())
		})
	}
}

func TestConfirmedCarriesPayload(t *testing.T) {
	o := Confirmed("hello world")
	assert.Equal(t, StateConfirmed, o.State)
	assert.Equal(t, 0, o.Button)
	assert.Equal(t, "hello world", o.Payload)
	assert.Equal(t, 0, o.ExitCode())
}

func TestErroredCarriesErr(t *testing.T) {
	err := errors.New(errors.ErrCodeConnectFailed, "no display")
	o := Errored(err)
	assert.Equal(t, StateErrored, o.State)
	assert.Same(t, err, o.Err)
}
