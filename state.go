// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

// State describes where a Dev is in its lifecycle. It is observable
// through Dev.State and changes only as a side effect of the lifecycle
// methods; the driver is single threaded and every transition completes
// before the method returns.
type State int

// Valid State values.
const (
	// Uninitialized is the state after New and before the first Init. The
	// panel may be in any hardware state; only Init is accepted.
	Uninitialized State = iota
	// Initializing is the transient state while Init runs the reset and
	// power-on sequence.
	Initializing
	// Idle means the panel is powered, configured and ready for a frame.
	Idle
	// TransferringData is the transient state while frame planes are
	// streamed to the controller RAM.
	TransferringData
	// Refreshing is the transient state while the controller drives the
	// panel waveform. The driver blocks on the busy line for its duration.
	Refreshing
	// Sleeping means the controller is in deep sleep. RAM and LUT contents
	// are lost; only Wake (or Init) is accepted.
	Sleeping
	// Faulted is entered when a bus transfer fails or the busy line times
	// out. The hardware state is unknown; only Init clears it.
	Faulted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initializing:
		return "Initializing"
	case Idle:
		return "Idle"
	case TransferringData:
		return "TransferringData"
	case Refreshing:
		return "Refreshing"
	case Sleeping:
		return "Sleeping"
	case Faulted:
		return "Faulted"
	default:
		return "Unknown"
	}
}
