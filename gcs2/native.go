// Package gcs2 provides a Go interface to Physik Instrumente motion
// controllers through the vendor's GCS2 library.
//
// The package is split in two layers.  Native is a 1:1 surface over the
// vendor entry points; it is implemented by the cgo shim in dll.go (build
// tag gcs2dll) and by Sim, a pure-Go simulator used in tests and mock
// deployments.  On top of Native sit three handle types: Communication
// owns enumeration and connection lifecycle and yields controller IDs,
// Controller wraps one controller ID for controller-scoped commands, and
// Axis additionally pins one axis identifier.
package gcs2

// Native is the set of vendor entry points the binding consumes.  Method
// semantics follow the GCS2 calling convention exactly:
//
// Communication-scoped calls return an integer code; negative values
// indicate failure and the code itself is the diagnostic.  IsConnecting,
// IsConnected, CloseDaisyChain and CloseConnection never report errors.
//
// Controller- and axis-scoped calls return a bare success boolean.  The
// diagnostic code must be fetched separately with GetError; the command's
// own return carries no error information.  Text results are written into
// caller-allocated byte buffers, NUL terminated; a buffer that is too
// small fails the call rather than truncating.
type Native interface {
	// EnumerateUSB writes a newline-separated listing of USB devices
	// matching filter into buf and returns the device count.  An empty
	// filter matches everything.
	EnumerateUSB(buf []byte, filter string) int

	// ConnectUSB opens a connection to the device named by desc and
	// returns its controller ID.
	ConnectUSB(desc string) int

	// ConnectUSBWithBaud is ConnectUSB with a pinned baud rate.
	ConnectUSBWithBaud(desc string, baud int) int

	// TryConnectUSB begins a background connection attempt and returns a
	// thread ID to poll with IsConnecting.
	TryConnectUSB(desc string) int

	// IsConnecting reports whether the attempt behind thread is still in
	// progress.
	IsConnecting(thread int) bool

	// GetControllerID resolves a completed connection attempt to a
	// controller ID.
	GetControllerID(thread int) int

	// IsConnected reports whether ctrl denotes a live connection.
	IsConnected(ctrl int) bool

	// SetDaisyChainScanMax sets the highest device ID probed when a daisy
	// chain is opened.  Must be called before OpenUSBDaisyChain.
	SetDaisyChainScanMax(max int) int

	// OpenUSBDaisyChain opens the chain's USB port, stores the device
	// count in nDevices and their identification text in buf, and returns
	// a daisy chain ID.  It does not connect to any device on the chain.
	OpenUSBDaisyChain(desc string, nDevices *int, buf []byte) int

	// ConnectDaisyChainDevice connects to one device on an open chain,
	// addressed by 1-based index, and returns its controller ID.
	ConnectDaisyChainDevice(daisy, device int) int

	// CloseDaisyChain releases the chain's USB port.
	CloseDaisyChain(daisy int)

	// CloseConnection closes one controller connection.
	CloseConnection(ctrl int)

	// SetErrorCheck toggles the library's automatic error check after
	// each command.
	SetErrorCheck(ctrl int, on bool)

	// GetError pops the last error code recorded for ctrl.
	GetError(ctrl int) int

	// TranslateError writes the message for code into buf.  A false
	// return means buf was too small.
	TranslateError(code int, buf []byte) bool

	IsMoving(ctrl int, axes string, moving *bool) bool
	IsControllerReady(ctrl int, ready *bool) bool
	IsRunningMacro(ctrl int, running *bool) bool

	// EnableAxis activates or deactivates an axis (EAX).
	EnableAxis(ctrl int, axis string, on bool) bool

	// GetAxisEnabled queries axis activation state (qEAX).
	GetAxisEnabled(ctrl int, axis string, out *bool) bool

	// GetAxes writes the active axis identifiers, one per line (qSAI).
	GetAxes(ctrl int, buf []byte) bool

	// GetAllAxes is GetAxes including deactivated axes (qSAI_ALL).
	GetAllAxes(ctrl int, buf []byte) bool

	// StopAll aborts motion on every axis immediately.
	StopAll(ctrl int) bool

	GetHelp(ctrl int, buf []byte) bool
	GetIdentification(ctrl int, buf []byte) bool
	GetParameterInfo(ctrl int, buf []byte) bool
	GetValidCharacters(ctrl int, buf []byte) bool
	GetVersion(ctrl int, buf []byte) bool

	GetReferenceMode(ctrl int, axis string, out *int) bool
	SetReferenceMode(ctrl int, axis string, mode int) bool

	// GetReferenced reports whether the axis has completed a reference
	// move (qFRF).
	GetReferenced(ctrl int, axis string, out *bool) bool

	// ReferenceToSwitch starts a reference move to the reference switch
	// (FRF).  Like all motion commands it returns before motion ends.
	ReferenceToSwitch(ctrl int, axis string) bool

	// ReferenceToNegativeLimit starts a reference move to the negative
	// limit switch (FNL).
	ReferenceToNegativeLimit(ctrl int, axis string) bool

	// ReferenceToPositiveLimit starts a reference move to the positive
	// limit switch (FPL).
	ReferenceToPositiveLimit(ctrl int, axis string) bool

	GoHome(ctrl int, axis string) bool

	// Halt stops the axis smoothly, unlike StopAll.
	Halt(ctrl int, axis string) bool

	GetPosition(ctrl int, axis string, out *float64) bool

	// SetPosition overwrites the controller's notion of the current
	// position without moving (POS).
	SetPosition(ctrl int, axis string, pos float64) bool

	MoveAbs(ctrl int, axis string, pos float64) bool
	MoveRel(ctrl int, axis string, delta float64) bool

	GetVelocity(ctrl int, axis string, out *float64) bool
	SetVelocity(ctrl int, axis string, v float64) bool
	GetAcceleration(ctrl int, axis string, out *float64) bool
	SetAcceleration(ctrl int, axis string, a float64) bool

	GetTravelMin(ctrl int, axis string, out *float64) bool
	GetTravelMax(ctrl int, axis string, out *float64) bool

	GetStageType(ctrl int, axis string, buf []byte) bool

	// GetParameters reads volatile parameter values and their description
	// (qSPA).  ids and values must have equal length.
	GetParameters(ctrl int, axis string, ids []uint32, values []float64, buf []byte) bool

	// SetParameters writes volatile parameter values (SPA).
	SetParameters(ctrl int, axis string, ids []uint32, values []float64, desc string) bool

	// GetParametersPersisted reads EEPROM-backed values (qSEP).
	GetParametersPersisted(ctrl int, axis string, ids []uint32, values []float64, buf []byte) bool

	// SetParametersPersisted writes EEPROM-backed values (SEP).  The
	// vendor requires the fixed command-group password for writes to
	// non-volatile memory.
	SetParametersPersisted(ctrl int, password, axis string, ids []uint32, values []float64, desc string) bool

	GetServo(ctrl int, axis string, out *int) bool
	SetServo(ctrl int, axis string, state int) bool
}
