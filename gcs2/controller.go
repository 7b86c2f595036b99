package gcs2

import (
	"strings"
)

// default allocations for the introspection queries.  Help and parameter
// listings routinely exceed their default and are grown by query.
const (
	axesBufferLen    = 256
	idnBufferLen     = 256
	charsetBufferLen = 256
	versionBufferLen = 512
	helpBufferLen    = 512
	paramsBufferLen  = 512
)

// Controller wraps one controller ID for controller-scoped commands.  It
// is only valid while the underlying connection is open; commands issued
// after CloseConnection are undefined at the native layer.
//
// Controller also exposes the per-axis operations keyed by axis name so
// that it satisfies the motion facade interfaces; Axis pins the name for
// callers that hold a single axis.
type Controller struct {
	api Native

	// ID is the controller identifier from a successful connect.
	ID int
}

// NewController wraps a connected controller ID.
func NewController(api Native, id int) *Controller {
	return &Controller{api: api, ID: id}
}

// check implements the two-step error protocol of controller-scoped
// commands: the command's own return only signals ok/not ok, and the
// diagnostic code must be fetched from the controller afterwards.  The
// command's return value is never what gets translated.
func (c *Controller) check(ok bool) error {
	if ok {
		return nil
	}
	return statusErr(c.api, c.api.GetError(c.ID))
}

// query runs a string-returning command against a caller-sized buffer,
// doubling the allocation and retrying when the controller reports the
// buffer was too small.  Responses are never silently truncated.
func (c *Controller) query(size int, fn func([]byte) bool) (string, error) {
	for {
		buf := make([]byte, size)
		if fn(buf) {
			return strings.TrimSpace(decodeASCII(buf)), nil
		}
		code := c.api.GetError(c.ID)
		if code == codeBufferOverflow && size < maxResponseLen {
			size *= 2
			continue
		}
		return "", statusErr(c.api, code)
	}
}

// PopError fetches and clears the controller's last error, returning nil
// when there is none.
func (c *Controller) PopError() error {
	code := c.api.GetError(c.ID)
	if code == 0 {
		return nil
	}
	return statusErr(c.api, code)
}

// SetErrorCheck toggles the native library's automatic error check after
// each command.  Disabling it trades safety for round-trip time; the
// trade-off belongs to the caller.
func (c *Controller) SetErrorCheck(on bool) {
	c.api.SetErrorCheck(c.ID, on)
}

// IsMoving reports whether any of the named axes is moving.  An empty
// axes string queries all axes.
func (c *Controller) IsMoving(axes string) (bool, error) {
	var b bool
	err := c.check(c.api.IsMoving(c.ID, axes, &b))
	return b, err
}

// IsReady reports whether the controller can accept new commands.
func (c *Controller) IsReady() (bool, error) {
	var b bool
	err := c.check(c.api.IsControllerReady(c.ID, &b))
	return b, err
}

// IsRunningMacro reports whether a stored macro is executing.
func (c *Controller) IsRunningMacro() (bool, error) {
	var b bool
	err := c.check(c.api.IsRunningMacro(c.ID, &b))
	return b, err
}

// Enable activates an axis.
func (c *Controller) Enable(axis string) error {
	return c.check(c.api.EnableAxis(c.ID, axis, true))
}

// Disable deactivates an axis.
func (c *Controller) Disable(axis string) error {
	return c.check(c.api.EnableAxis(c.ID, axis, false))
}

// GetEnabled reports whether an axis is activated.
func (c *Controller) GetEnabled(axis string) (bool, error) {
	var b bool
	err := c.check(c.api.GetAxisEnabled(c.ID, axis, &b))
	return b, err
}

// Axes returns the controller's axis identifiers.  With deactivated set,
// axes that are configured but switched off are included.
func (c *Controller) Axes(deactivated bool) ([]string, error) {
	fn := func(buf []byte) bool { return c.api.GetAxes(c.ID, buf) }
	if deactivated {
		fn = func(buf []byte) bool { return c.api.GetAllAxes(c.ID, buf) }
	}
	listing, err := c.query(axesBufferLen, fn)
	if err != nil {
		return nil, err
	}
	return splitLines(listing), nil
}

// StopAll aborts motion on every axis immediately.  For a smooth stop of
// one axis use Stop.
func (c *Controller) StopAll() error {
	return c.check(c.api.StopAll(c.ID))
}

// Help returns the controller's listing of supported commands.
func (c *Controller) Help() (string, error) {
	return c.query(helpBufferLen, func(buf []byte) bool {
		return c.api.GetHelp(c.ID, buf)
	})
}

// Identification returns the controller's identification string.
func (c *Controller) Identification() (string, error) {
	return c.query(idnBufferLen, func(buf []byte) bool {
		return c.api.GetIdentification(c.ID, buf)
	})
}

// SupportedParameters returns the controller's parameter listing.
func (c *Controller) SupportedParameters() (string, error) {
	return c.query(paramsBufferLen, func(buf []byte) bool {
		return c.api.GetParameterInfo(c.ID, buf)
	})
}

// ValidCharacters returns the character set valid in axis identifiers.
func (c *Controller) ValidCharacters() (string, error) {
	return c.query(charsetBufferLen, func(buf []byte) bool {
		return c.api.GetValidCharacters(c.ID, buf)
	})
}

// Version returns the firmware and library version text.
func (c *Controller) Version() (string, error) {
	return c.query(versionBufferLen, func(buf []byte) bool {
		return c.api.GetVersion(c.ID, buf)
	})
}

// Versions parses the Version response into its "component: version"
// pairs.
func (c *Controller) Versions() (map[string]string, error) {
	raw, err := c.Version()
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	for _, line := range splitLines(raw) {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out, nil
}

// IDN holds the fields of a controller identification response.
type IDN struct {
	Vendor string
	Model  string
	Serial string
}

// ParseIDN splits a comma-separated identification response, e.g.
// "Physik Instrumente, E-873, 119006725, 1.0.1.1".
func ParseIDN(s string) IDN {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	idn := IDN{}
	if len(parts) > 0 {
		idn.Vendor = parts[0]
	}
	if len(parts) > 1 {
		idn.Model = parts[1]
	}
	if len(parts) > 2 {
		idn.Serial = parts[2]
	}
	return idn
}

// The methods below expose axis operations keyed by axis name, matching
// the motion facade interfaces.  Each delegates to the Axis handle.

// GetPos returns the current position of an axis.
func (c *Controller) GetPos(axis string) (float64, error) {
	return c.Axis(axis).Position()
}

// MoveAbs commands an absolute move.  The command returns as soon as the
// controller accepts it; poll IsMoving for completion.
func (c *Controller) MoveAbs(axis string, pos float64) error {
	return c.Axis(axis).MoveAbs(pos)
}

// MoveRel commands a relative move.  Asynchronous, like MoveAbs.
func (c *Controller) MoveRel(axis string, delta float64) error {
	return c.Axis(axis).MoveRel(delta)
}

// Home moves an axis to its home position.
func (c *Controller) Home(axis string) error {
	return c.Axis(axis).GoHome()
}

// Stop halts one axis smoothly.  StopAll is the abrupt variant.
func (c *Controller) Stop(axis string) error {
	return c.Axis(axis).Halt()
}

// GetInPosition reports whether the axis has finished moving.
func (c *Controller) GetInPosition(axis string) (bool, error) {
	moving, err := c.IsMoving(axis)
	return !moving, err
}

// GetVelocity gets the velocity setpoint of an axis.
func (c *Controller) GetVelocity(axis string) (float64, error) {
	return c.Axis(axis).Velocity()
}

// SetVelocity sets the velocity setpoint of an axis.
func (c *Controller) SetVelocity(axis string, v float64) error {
	return c.Axis(axis).SetVelocity(v)
}

// GetAcceleration gets the acceleration setpoint of an axis.
func (c *Controller) GetAcceleration(axis string) (float64, error) {
	return c.Axis(axis).Acceleration()
}

// SetAcceleration sets the acceleration setpoint of an axis.
func (c *Controller) SetAcceleration(axis string, acc float64) error {
	return c.Axis(axis).SetAcceleration(acc)
}

// GetReferenced reports whether an axis has completed a reference move.
func (c *Controller) GetReferenced(axis string) (bool, error) {
	return c.Axis(axis).Referenced()
}

// Reference starts a reference move on an axis.  The strategy is the
// string form accepted by ParseReferenceStrategy.
func (c *Controller) Reference(axis, strategy string) error {
	s, err := ParseReferenceStrategy(strategy)
	if err != nil {
		return err
	}
	return c.Axis(axis).Reference(s)
}

// Initialize readies an axis for closed-loop motion: servo on, then a
// reference move to the reference switch.
func (c *Controller) Initialize(axis string) error {
	ax := c.Axis(axis)
	if err := ax.SetServoState(ClosedLoop); err != nil {
		return err
	}
	return ax.Reference(ReferenceSwitch)
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
