package gcs2

import "fmt"

// ReferenceMode selects whether an axis references absolutely or
// relatively when homing.
type ReferenceMode int

// the numeric values are the vendor's, do not renumber
const (
	// RelativeReference homes relative to the current position.
	RelativeReference ReferenceMode = 0

	// AbsoluteReference homes against an absolute reference.
	AbsoluteReference ReferenceMode = 1
)

func (m ReferenceMode) String() string {
	switch m {
	case RelativeReference:
		return "relative"
	case AbsoluteReference:
		return "absolute"
	}
	return fmt.Sprintf("ReferenceMode(%d)", int(m))
}

// native converts m to the vendor integer, rejecting unknown values
// instead of passing them through.
func (m ReferenceMode) native() (int, error) {
	switch m {
	case RelativeReference, AbsoluteReference:
		return int(m), nil
	}
	return 0, fmt.Errorf("unknown reference mode %d", int(m))
}

func referenceModeFromNative(i int) (ReferenceMode, error) {
	switch i {
	case 0:
		return RelativeReference, nil
	case 1:
		return AbsoluteReference, nil
	}
	return 0, fmt.Errorf("controller returned unknown reference mode %d", i)
}

// ReferenceStrategy selects which physical feature a reference move seeks.
type ReferenceStrategy int

const (
	// ReferenceSwitch seeks the dedicated reference switch.
	ReferenceSwitch ReferenceStrategy = iota

	// NegativeLimit seeks the negative limit switch.
	NegativeLimit

	// PositiveLimit seeks the positive limit switch.
	PositiveLimit
)

func (s ReferenceStrategy) String() string {
	switch s {
	case ReferenceSwitch:
		return "switch"
	case NegativeLimit:
		return "negative-limit"
	case PositiveLimit:
		return "positive-limit"
	}
	return fmt.Sprintf("ReferenceStrategy(%d)", int(s))
}

// ParseReferenceStrategy converts the string form back to a strategy.
func ParseReferenceStrategy(s string) (ReferenceStrategy, error) {
	switch s {
	case "switch":
		return ReferenceSwitch, nil
	case "negative-limit":
		return NegativeLimit, nil
	case "positive-limit":
		return PositiveLimit, nil
	}
	return 0, fmt.Errorf("unknown reference strategy %q", s)
}

// ServoState is the control loop mode of an axis.
type ServoState int

// the numeric values are the vendor's, do not renumber
const (
	// OpenLoop disengages sensor feedback.
	OpenLoop ServoState = 0

	// ClosedLoop engages sensor feedback.
	ClosedLoop ServoState = 1
)

func (s ServoState) String() string {
	switch s {
	case OpenLoop:
		return "open-loop"
	case ClosedLoop:
		return "closed-loop"
	}
	return fmt.Sprintf("ServoState(%d)", int(s))
}

func (s ServoState) native() (int, error) {
	switch s {
	case OpenLoop, ClosedLoop:
		return int(s), nil
	}
	return 0, fmt.Errorf("unknown servo state %d", int(s))
}

func servoStateFromNative(i int) (ServoState, error) {
	switch i {
	case 0:
		return OpenLoop, nil
	case 1:
		return ClosedLoop, nil
	}
	return 0, fmt.Errorf("controller returned unknown servo state %d", i)
}
