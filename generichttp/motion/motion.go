// Package motion provides an HTTP interface to motion controllers
package motion

/*
This file uses higher order / metaprogramming to efficiently bind the supported
interfaces for a motion controller, which may implement any number of them.
*/
import (
	"github.com/hwlab/pigcs2/generichttp"
)

// Controller is used for the HTTP interface, which will check if the concrete
// type satisfies the other interfaces in this package and inject their routes
// automatically
type Controller interface {
	// Mover - all Controllers must be Movers
	Mover
}

// HTTPMotionController wraps a motion controller with HTTP
type HTTPMotionController struct {
	Controller

	RouteTable generichttp.RouteTable
}

// NewHTTPMotionController returns a new HTTP wrapper with the route table pre-configured
func NewHTTPMotionController(c Controller) HTTPMotionController {
	w := HTTPMotionController{Controller: c}
	rt := generichttp.RouteTable{}
	// the interface{}().(foo); ok syntax is an awful go-ism to test if c implements foo
	HTTPMove(c, rt)
	if enabler, ok := interface{}(c).(Enabler); ok {
		HTTPEnable(enabler, rt)
	}
	if speeder, ok := interface{}(c).(Speeder); ok {
		HTTPSpeed(speeder, rt)
	}
	if accelerator, ok := interface{}(c).(Accelerator); ok {
		HTTPAccel(accelerator, rt)
	}
	if initializer, ok := interface{}(c).(Initializer); ok {
		HTTPInitialize(initializer, rt)
	}
	if inpos, ok := interface{}(c).(InPositionQueryer); ok {
		HTTPInPosition(inpos, rt)
	}
	if stopper, ok := interface{}(c).(Stopper); ok {
		HTTPStop(stopper, rt)
	}
	if referencer, ok := interface{}(c).(Referencer); ok {
		HTTPReference(referencer, rt)
	}
	w.RouteTable = rt
	return w
}

// RT satisfies the HTTPer interface
func (h HTTPMotionController) RT() generichttp.RouteTable {
	return h.RouteTable
}
