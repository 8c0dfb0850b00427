package delivery

import (
	"fmt"

	"aos/internal/pkg/errs"
)

// Status represents the lifecycle state of a cross-chain delivery.
// It implements a state machine with defined transitions so a pending
// record is finalized exactly once.
//
// State transitions:
//
//	AwaitingAck ──┬──> Completed
//	              ├──> Failed
//	              └──> TimedOut
//
// The three right-hand states are terminal. A record that has reached one
// of them never changes again; it is retained for audit.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// AwaitingAck is the initial status of a remote dispatch: the envelope
	// has left through the bridge and no acknowledgement or timeout has
	// been observed yet.
	AwaitingAck

	// Completed indicates the destination chain acknowledged successful
	// execution and escrow was released. Terminal.
	Completed

	// Failed indicates the destination chain acknowledged with an error
	// and escrow was refunded to the origin. Terminal.
	Failed

	// TimedOut indicates the deadline passed without an acknowledgement
	// and escrow was refunded to the origin. Terminal.
	TimedOut
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "Unknown",
		AwaitingAck: "AwaitingAck",
		Completed:   "Completed",
		Failed:      "Failed",
		TimedOut:    "TimedOut",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		AwaitingAck: "AwaitingAck",
		Completed:   "Completed",
		Failed:      "Failed",
		TimedOut:    "TimedOut",
	}
}

// StatusFromString parses a status name as produced by String.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// Valid statuses are: AwaitingAck, Completed, Failed, TimedOut.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. It implements the
// fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether the status is one of the terminal states.
func (s Status) IsFinal() bool {
	return s == Completed || s == Failed || s == TimedOut
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - AwaitingAck -> Completed (successful acknowledgement)
//
// Any other source state is rejected: terminal states are never re-entered,
// which is what makes duplicate acknowledgement delivery a no-op.
func (s Status) Complete() (Status, error) {
	if s != AwaitingAck {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// Fail transitions the status to Failed.
//
// Valid transitions:
//   - AwaitingAck -> Failed (error acknowledgement)
func (s Status) Fail() (Status, error) {
	if s != AwaitingAck {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to fail", s.String()),
		)
	}

	return Failed, nil
}

// Timeout transitions the status to TimedOut.
//
// Valid transitions:
//   - AwaitingAck -> TimedOut (deadline passed without acknowledgement)
func (s Status) Timeout() (Status, error) {
	if s != AwaitingAck {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to time out", s.String()),
		)
	}

	return TimedOut, nil
}
