package gcs2

// Device is one connectable controller found by Discover.
type Device struct {
	// Desc is the enumeration descriptor to pass to ConnectUSB or
	// OpenUSBDaisyChain.
	Desc string

	// DaisyIndex is the 1-based index on the chain, or zero for a device
	// connected directly.
	DaisyIndex int

	// Members is the device count of the chain the device sits on, zero
	// for a direct device.
	Members int
}

// Discover enumerates the USB bus and probes every descriptor, first as a
// daisy chain master and then as a direct device.  Each connectable
// device is probed with a short-lived connection which is closed before
// returning.  Controllers that refuse the probe are skipped, not
// reported as errors.
func Discover(c *Communication) ([]Device, error) {
	listing, err := c.EnumerateUSB("")
	if err != nil {
		return nil, err
	}
	var out []Device
	for _, desc := range splitLines(listing) {
		daisy, n, _, err := c.OpenUSBDaisyChain(desc)
		if err == nil && n > 1 {
			for i := 1; i <= n; i++ {
				ctrl, err := c.ConnectDaisyChainDevice(daisy, i)
				if err != nil {
					continue
				}
				c.CloseConnection(ctrl)
				out = append(out, Device{Desc: desc, DaisyIndex: i, Members: n})
			}
			c.CloseDaisyChain(daisy)
			continue
		}
		if err == nil {
			// a chain of one is just a controller behind a port
			c.CloseDaisyChain(daisy)
		}
		ctrl, err := c.ConnectUSB(desc)
		if err != nil {
			continue
		}
		c.CloseConnection(ctrl)
		out = append(out, Device{Desc: desc})
	}
	return out, nil
}
