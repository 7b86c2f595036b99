package gcs2

import (
	"strings"
	"testing"
)

// newTestController connects to a simulated two-axis controller with one
// deactivated axis.
func newTestController(t *testing.T) (*Sim, *Controller) {
	t.Helper()
	sim := NewSim(SimDevice{
		IDN:         "Physik Instrumente, E-873, 119006725, 1.0.1.1",
		Axes:        []string{"1", "2"},
		Deactivated: []string{"3"},
		Stage:       "L-406.20DD10"})
	comm := NewCommunication(sim)
	id, err := comm.ConnectUSB(sim.devices[0].IDN)
	if err != nil {
		t.Fatal(err)
	}
	return sim, NewController(sim, id)
}

// settle polls the motion status until every axis has stopped.
func settle(t *testing.T, c *Controller) {
	t.Helper()
	for i := 0; i < 10; i++ {
		moving, err := c.IsMoving("")
		if err != nil {
			t.Fatal(err)
		}
		if !moving {
			return
		}
	}
	t.Fatal("controller still moving after 10 polls")
}

// ready turns the servo on and references the axis so moves are legal.
func ready(t *testing.T, c *Controller, axis string) Axis {
	t.Helper()
	ax := c.Axis(axis)
	if err := ax.SetServoState(ClosedLoop); err != nil {
		t.Fatal(err)
	}
	if err := ax.Reference(ReferenceSwitch); err != nil {
		t.Fatal(err)
	}
	settle(t, c)
	return ax
}

func TestAxesListing(t *testing.T) {
	_, c := newTestController(t)
	active, err := c.Axes(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 {
		t.Errorf("active axes: got %v", active)
	}
	all, err := c.Axes(true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("all axes: got %v", all)
	}
}

func TestTwoStepErrorProtocol(t *testing.T) {
	_, c := newTestController(t)
	_, err := c.Axis("99").Position()
	st, ok := err.(Status)
	if !ok {
		t.Fatalf("expected Status, got %T (%v)", err, err)
	}
	if st.Code != 15 {
		t.Errorf("code: got %d, want 15", st.Code)
	}
	if !strings.Contains(st.Msg, "axis") {
		t.Errorf("message not translated: %q", st.Msg)
	}
	// the diagnostic was consumed by the failed command's check
	if err := c.PopError(); err != nil {
		t.Errorf("stale error left behind: %v", err)
	}
}

func TestPopError(t *testing.T) {
	sim, c := newTestController(t)
	if err := c.PopError(); err != nil {
		t.Fatalf("fresh controller has an error: %v", err)
	}
	// fault the controller behind the handle's back
	if sim.SetVelocity(c.ID, "1", -1) {
		t.Fatal("simulator accepted a negative velocity")
	}
	err := c.PopError()
	st, ok := err.(Status)
	if !ok || st.Code != 8 {
		t.Fatalf("expected code 8, got %v", err)
	}
	if err := c.PopError(); err != nil {
		t.Errorf("error not cleared by fetch: %v", err)
	}
}

func TestHelpGrowsBuffer(t *testing.T) {
	sim, c := newTestController(t)
	if len(simHelp) <= helpBufferLen {
		t.Fatalf("fixture too small to force a retry: %d bytes", len(simHelp))
	}
	help, err := c.Help()
	if err != nil {
		t.Fatal(err)
	}
	if help != simHelp {
		t.Errorf("help truncated or mangled, got %d bytes", len(help))
	}
	if n := sim.CallCount("qHLP"); n < 2 {
		t.Errorf("expected a grown retry, got %d calls", n)
	}
}

func TestIdentification(t *testing.T) {
	_, c := newTestController(t)
	idn, err := c.Identification()
	if err != nil {
		t.Fatal(err)
	}
	parsed := ParseIDN(idn)
	if parsed.Vendor != "Physik Instrumente" {
		t.Errorf("vendor: got %q", parsed.Vendor)
	}
	if parsed.Model != "E-873" {
		t.Errorf("model: got %q", parsed.Model)
	}
	if parsed.Serial != "119006725" {
		t.Errorf("serial: got %q", parsed.Serial)
	}
}

func TestVersions(t *testing.T) {
	_, c := newTestController(t)
	vers, err := c.Versions()
	if err != nil {
		t.Fatal(err)
	}
	if vers["PI_GCS2_DLL"] == "" {
		t.Errorf("missing library version: %v", vers)
	}
	if vers["FW_DSP"] == "" {
		t.Errorf("missing firmware version: %v", vers)
	}
}

func TestSupportedParameters(t *testing.T) {
	_, c := newTestController(t)
	params, err := c.SupportedParameters()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(params, "Velocity") {
		t.Errorf("got %q", params)
	}
}

func TestValidCharacters(t *testing.T) {
	_, c := newTestController(t)
	chars, err := c.ValidCharacters()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(chars, "A") {
		t.Errorf("got %q", chars)
	}
}

func TestEnableDisable(t *testing.T) {
	sim, c := newTestController(t)
	on, err := c.GetEnabled("3")
	if err != nil {
		t.Fatal(err)
	}
	if on {
		t.Error("deactivated axis reported enabled")
	}
	if err := c.Enable("3"); err != nil {
		t.Fatal(err)
	}
	on, err = c.GetEnabled("3")
	if err != nil {
		t.Fatal(err)
	}
	if !on {
		t.Error("axis not enabled after Enable")
	}
	if err := c.Disable("3"); err != nil {
		t.Fatal(err)
	}
	on, err = c.GetEnabled("3")
	if err != nil {
		t.Fatal(err)
	}
	if on {
		t.Error("axis enabled after Disable")
	}
	if sim.CallCount("EAX") != 2 || sim.CallCount("qEAX") != 3 {
		t.Errorf("calls: %v", sim.Calls())
	}
}

func TestIsReady(t *testing.T) {
	_, c := newTestController(t)
	ok, err := c.IsReady()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("idle controller not ready")
	}
}

func TestIsRunningMacro(t *testing.T) {
	_, c := newTestController(t)
	running, err := c.IsRunningMacro()
	if err != nil {
		t.Fatal(err)
	}
	if running {
		t.Error("no macro was started")
	}
}

func TestStopAll(t *testing.T) {
	_, c := newTestController(t)
	ax := ready(t, c, "1")
	if err := ax.MoveAbs(5); err != nil {
		t.Fatal(err)
	}
	if err := c.StopAll(); err != nil {
		t.Fatal(err)
	}
	settle(t, c)
	pos, err := ax.Position()
	if err != nil {
		t.Fatal(err)
	}
	if pos == 5 {
		t.Error("axis reached target despite stop")
	}
}

func TestInitialize(t *testing.T) {
	sim, c := newTestController(t)
	if err := c.Initialize("1"); err != nil {
		t.Fatal(err)
	}
	settle(t, c)
	if sim.CallCount("SVO") != 1 || sim.CallCount("FRF") != 1 {
		t.Errorf("calls: %v", sim.Calls())
	}
	referenced, err := c.Axis("1").Referenced()
	if err != nil {
		t.Fatal(err)
	}
	if !referenced {
		t.Error("axis not referenced after Initialize")
	}
}

func TestMotionFacade(t *testing.T) {
	_, c := newTestController(t)
	ready(t, c, "1")
	if err := c.MoveAbs("1", 2); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		inPos, err := c.GetInPosition("1")
		if err != nil {
			t.Fatal(err)
		}
		if inPos {
			break
		}
	}
	pos, err := c.GetPos("1")
	if err != nil {
		t.Fatal(err)
	}
	if pos != 2 {
		t.Errorf("position: got %v, want 2", pos)
	}
	if err := c.SetVelocity("1", 3.5); err != nil {
		t.Fatal(err)
	}
	v, err := c.GetVelocity("1")
	if err != nil {
		t.Fatal(err)
	}
	if v != 3.5 {
		t.Errorf("velocity: got %v, want 3.5", v)
	}
}
