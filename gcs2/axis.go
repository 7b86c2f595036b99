package gcs2

import (
	"fmt"
)

// stage type names are short; parameter descriptions can be longer
const (
	stageBufferLen = 256
	paramBufferLen = 256
)

// eepromPassword is the fixed command-group password the vendor requires
// for writes to non-volatile memory.
const eepromPassword = "100"

// Axis is a Controller with one axis identifier pinned at construction.
// The identifier is immutable; this layer does not validate it against
// the controller's axis set, the native library reports unknown axes as
// errors.
type Axis struct {
	*Controller

	// Name is the axis identifier on the controller.
	Name string
}

// Axis returns a handle scoped to one axis of the controller.
func (c *Controller) Axis(name string) Axis {
	return Axis{Controller: c, Name: name}
}

// ReferenceMode returns whether the axis references absolutely or
// relatively.
func (a Axis) ReferenceMode() (ReferenceMode, error) {
	var i int
	if err := a.check(a.api.GetReferenceMode(a.ID, a.Name, &i)); err != nil {
		return 0, err
	}
	return referenceModeFromNative(i)
}

// SetReferenceMode sets the axis's reference mode.
func (a Axis) SetReferenceMode(m ReferenceMode) error {
	i, err := m.native()
	if err != nil {
		return err
	}
	return a.check(a.api.SetReferenceMode(a.ID, a.Name, i))
}

// Referenced reports whether the axis has completed a reference move
// since power-up.
func (a Axis) Referenced() (bool, error) {
	var b bool
	err := a.check(a.api.GetReferenced(a.ID, a.Name, &b))
	return b, err
}

// Reference starts a reference move seeking the feature selected by the
// strategy.  The move is asynchronous; poll IsMoving or Referenced for
// completion.  An unrecognized strategy is an error, never a silent
// no-op.
func (a Axis) Reference(strategy ReferenceStrategy) error {
	switch strategy {
	case ReferenceSwitch:
		return a.check(a.api.ReferenceToSwitch(a.ID, a.Name))
	case NegativeLimit:
		return a.check(a.api.ReferenceToNegativeLimit(a.ID, a.Name))
	case PositiveLimit:
		return a.check(a.api.ReferenceToPositiveLimit(a.ID, a.Name))
	}
	return fmt.Errorf("unknown reference strategy %d, no reference move issued", int(strategy))
}

// GoHome moves the axis to its home position.
func (a Axis) GoHome() error {
	return a.check(a.api.GoHome(a.ID, a.Name))
}

// Halt stops the axis smoothly.  Controller.StopAll is the abrupt,
// all-axes variant.
func (a Axis) Halt() error {
	return a.check(a.api.Halt(a.ID, a.Name))
}

// Position returns the current position of the axis.
func (a Axis) Position() (float64, error) {
	var f float64
	err := a.check(a.api.GetPosition(a.ID, a.Name, &f))
	return f, err
}

// DefinePosition overwrites the controller's notion of the current
// position without moving.  This is a calibration operation, not a move
// command.
func (a Axis) DefinePosition(pos float64) error {
	return a.check(a.api.SetPosition(a.ID, a.Name, pos))
}

// MoveAbs commands an absolute move.  The call returns once the
// controller accepts the target; completion must be polled via IsMoving.
func (a Axis) MoveAbs(pos float64) error {
	return a.check(a.api.MoveAbs(a.ID, a.Name, pos))
}

// MoveRel commands a relative move.  Asynchronous, like MoveAbs.
func (a Axis) MoveRel(delta float64) error {
	return a.check(a.api.MoveRel(a.ID, a.Name, delta))
}

// Velocity returns the velocity setpoint applied to subsequent moves.
func (a Axis) Velocity() (float64, error) {
	var f float64
	err := a.check(a.api.GetVelocity(a.ID, a.Name, &f))
	return f, err
}

// SetVelocity sets the velocity setpoint.
func (a Axis) SetVelocity(v float64) error {
	return a.check(a.api.SetVelocity(a.ID, a.Name, v))
}

// Acceleration returns the acceleration setpoint.
func (a Axis) Acceleration() (float64, error) {
	var f float64
	err := a.check(a.api.GetAcceleration(a.ID, a.Name, &f))
	return f, err
}

// SetAcceleration sets the acceleration setpoint.
func (a Axis) SetAcceleration(acc float64) error {
	return a.check(a.api.SetAcceleration(a.ID, a.Name, acc))
}

// TravelMin returns the low end of the axis's travel range.
func (a Axis) TravelMin() (float64, error) {
	var f float64
	err := a.check(a.api.GetTravelMin(a.ID, a.Name, &f))
	return f, err
}

// TravelMax returns the high end of the axis's travel range.
func (a Axis) TravelMax() (float64, error) {
	var f float64
	err := a.check(a.api.GetTravelMax(a.ID, a.Name, &f))
	return f, err
}

// StageType returns the name of the stage assigned to the axis.
func (a Axis) StageType() (string, error) {
	return a.query(stageBufferLen, func(buf []byte) bool {
		return a.api.GetStageType(a.ID, a.Name, buf)
	})
}

// Parameter reads n values and the descriptive string of the parameter
// addressed by id.  With persisted set, the EEPROM-backed copy is read
// instead of the runtime one.
func (a Axis) Parameter(id uint32, persisted bool, n int) ([]float64, string, error) {
	ids := []uint32{id}
	values := make([]float64, n)
	buf := make([]byte, paramBufferLen)
	var ok bool
	if persisted {
		ok = a.api.GetParametersPersisted(a.ID, a.Name, ids, values, buf)
	} else {
		ok = a.api.GetParameters(a.ID, a.Name, ids, values, buf)
	}
	if err := a.check(ok); err != nil {
		return nil, "", err
	}
	return values, decodeASCII(buf), nil
}

// SetParameter writes values and the descriptive string of the parameter
// addressed by id.  With persisted set, the write goes to non-volatile
// memory through the vendor's fixed command-group password; otherwise it
// affects only the runtime copy.
func (a Axis) SetParameter(id uint32, persisted bool, values []float64, desc string) error {
	ids := []uint32{id}
	if persisted {
		return a.check(a.api.SetParametersPersisted(a.ID, eepromPassword, a.Name, ids, values, desc))
	}
	return a.check(a.api.SetParameters(a.ID, a.Name, ids, values, desc))
}

// ServoState returns the axis's control loop mode.
func (a Axis) ServoState() (ServoState, error) {
	var i int
	if err := a.check(a.api.GetServo(a.ID, a.Name, &i)); err != nil {
		return 0, err
	}
	return servoStateFromNative(i)
}

// SetServoState sets the axis's control loop mode.
func (a Axis) SetServoState(s ServoState) error {
	i, err := s.native()
	if err != nil {
		return err
	}
	return a.check(a.api.SetServo(a.ID, a.Name, i))
}
