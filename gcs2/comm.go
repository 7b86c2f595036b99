package gcs2

import (
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
)

// enumBufferLen sizes the listing buffer for device enumeration.  A USB
// bus full of controllers produces a few hundred bytes of descriptors.
const enumBufferLen = 4096

// Communication manages device enumeration and the connection lifecycle.
// Successful connects yield controller IDs to hand to NewController; the
// IDs stay valid until CloseConnection (or CloseDaisyChain for chained
// devices) is called with them.
type Communication struct {
	api Native
}

// NewCommunication returns a Communication backed by the given native
// layer.
func NewCommunication(api Native) *Communication {
	return &Communication{api: api}
}

// Native returns the layer behind the communication handle, for
// constructing Controllers against the same library instance.
func (c *Communication) Native() Native {
	return c.api
}

// check raises a translated error when a communication-scope return code
// indicates failure.  Negative means failure at this layer; the code is
// its own diagnostic.
func (c *Communication) check(code int) error {
	if code < 0 {
		return statusErr(c.api, code)
	}
	return nil
}

// EnumerateUSB returns the newline-separated descriptors of USB devices
// matching keyword.  An empty keyword matches all devices.
func (c *Communication) EnumerateUSB(keyword string) (string, error) {
	buf := make([]byte, enumBufferLen)
	if err := c.check(c.api.EnumerateUSB(buf, keyword)); err != nil {
		return "", err
	}
	return strings.TrimSpace(decodeASCII(buf)), nil
}

// ConnectUSB connects directly to the device named by desc, a descriptor
// string as returned by EnumerateUSB, and returns its controller ID.
func (c *Communication) ConnectUSB(desc string) (int, error) {
	id := c.api.ConnectUSB(desc)
	if err := c.check(id); err != nil {
		return 0, err
	}
	return id, nil
}

// ConnectUSBWithBaud is ConnectUSB with the interface baud rate pinned.
func (c *Communication) ConnectUSBWithBaud(desc string, baud int) (int, error) {
	id := c.api.ConnectUSBWithBaud(desc, baud)
	if err := c.check(id); err != nil {
		return 0, err
	}
	return id, nil
}

// TryConnectUSB begins a background connection attempt and returns a
// thread ID.  Poll IsConnecting until it reports false, then resolve the
// thread ID with GetControllerID, or use WaitConnected to do both.
func (c *Communication) TryConnectUSB(desc string) (int, error) {
	thread := c.api.TryConnectUSB(desc)
	if err := c.check(thread); err != nil {
		return 0, err
	}
	return thread, nil
}

// IsConnecting reports whether the attempt behind thread is still running.
func (c *Communication) IsConnecting(thread int) bool {
	return c.api.IsConnecting(thread)
}

// GetControllerID resolves a finished connection attempt to a controller
// ID.
func (c *Communication) GetControllerID(thread int) (int, error) {
	id := c.api.GetControllerID(thread)
	if err := c.check(id); err != nil {
		return 0, err
	}
	return id, nil
}

// WaitConnected polls a connection attempt until it completes and returns
// the controller ID.  The native library gives no completion signal, so
// this is a polling loop; it backs off exponentially and gives up after
// timeout rather than spinning forever.
func (c *Communication) WaitConnected(thread int, timeout time.Duration) (int, error) {
	op := func() error {
		if c.api.IsConnecting(thread) {
			return fmt.Errorf("still connecting")
		}
		return nil
	}
	err := backoff.Retry(op, &backoff.ExponentialBackOff{
		InitialInterval:     10 * time.Millisecond,
		RandomizationFactor: 0.,
		Multiplier:          2.,
		MaxInterval:         250 * time.Millisecond,
		MaxElapsedTime:      timeout,
		Clock:               backoff.SystemClock})
	if err != nil {
		return 0, fmt.Errorf("connection attempt did not complete within %v", timeout)
	}
	return c.GetControllerID(thread)
}

// IsConnected reports whether ctrl denotes a live connection.  A dead or
// closed ID is a normal query result, not an error.
func (c *Communication) IsConnected(ctrl int) bool {
	return c.api.IsConnected(ctrl)
}

// SetDaisyChainScanMax bounds the device IDs probed when a chain is
// opened.  It must be called before OpenUSBDaisyChain to take effect.
func (c *Communication) SetDaisyChainScanMax(max int) error {
	return c.check(c.api.SetDaisyChainScanMax(max))
}

// OpenUSBDaisyChain opens the USB port of a daisy chain and returns the
// chain ID, the number of devices on the chain, and their identification
// text.  No device is connected yet; use ConnectDaisyChainDevice.
func (c *Communication) OpenUSBDaisyChain(desc string) (int, int, string, error) {
	var n int
	buf := make([]byte, enumBufferLen)
	daisy := c.api.OpenUSBDaisyChain(desc, &n, buf)
	if err := c.check(daisy); err != nil {
		return 0, 0, "", err
	}
	return daisy, n, strings.TrimSpace(decodeASCII(buf)), nil
}

// ConnectDaisyChainDevice connects to one device on an open chain.
// device is 1-based.
func (c *Communication) ConnectDaisyChainDevice(daisy, device int) (int, error) {
	id := c.api.ConnectDaisyChainDevice(daisy, device)
	if err := c.check(id); err != nil {
		return 0, err
	}
	return id, nil
}

// CloseDaisyChain releases the chain's USB port.  Cleanup is best-effort;
// the native call reports nothing.
func (c *Communication) CloseDaisyChain(daisy int) {
	c.api.CloseDaisyChain(daisy)
}

// CloseConnection closes one controller connection.  Best-effort, like
// CloseDaisyChain.
func (c *Communication) CloseConnection(ctrl int) {
	c.api.CloseConnection(ctrl)
}
