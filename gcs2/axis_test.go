package gcs2

import "testing"

func TestReferenceModeSetGet(t *testing.T) {
	_, c := newTestController(t)
	ax := c.Axis("1")
	mode, err := ax.ReferenceMode()
	if err != nil {
		t.Fatal(err)
	}
	if mode != AbsoluteReference {
		t.Errorf("default mode: got %v", mode)
	}
	if err := ax.SetReferenceMode(RelativeReference); err != nil {
		t.Fatal(err)
	}
	mode, err = ax.ReferenceMode()
	if err != nil {
		t.Fatal(err)
	}
	if mode != RelativeReference {
		t.Errorf("mode after set: got %v", mode)
	}
	if err := ax.SetReferenceMode(ReferenceMode(9)); err == nil {
		t.Error("accepted unknown reference mode")
	}
}

func TestReferenceDispatch(t *testing.T) {
	sim, c := newTestController(t)
	ax := c.Axis("1")
	for _, tc := range []struct {
		strategy ReferenceStrategy
		mnemonic string
	}{
		{ReferenceSwitch, "FRF"},
		{NegativeLimit, "FNL"},
		{PositiveLimit, "FPL"},
	} {
		sim.ResetCalls()
		if err := ax.Reference(tc.strategy); err != nil {
			t.Fatal(err)
		}
		settle(t, c)
		if sim.CallCount(tc.mnemonic) != 1 {
			t.Errorf("%v: calls %v", tc.strategy, sim.Calls())
		}
	}
}

func TestReferenceUnknownStrategy(t *testing.T) {
	sim, c := newTestController(t)
	ax := c.Axis("1")
	sim.ResetCalls()
	if err := ax.Reference(ReferenceStrategy(42)); err == nil {
		t.Fatal("unknown strategy did not error")
	}
	if len(sim.Calls()) != 0 {
		t.Errorf("unknown strategy reached the controller: %v", sim.Calls())
	}
}

func TestReferencedFlag(t *testing.T) {
	_, c := newTestController(t)
	ax := c.Axis("1")
	referenced, err := ax.Referenced()
	if err != nil {
		t.Fatal(err)
	}
	if referenced {
		t.Error("axis referenced before any reference move")
	}
	ready(t, c, "1")
	referenced, err = ax.Referenced()
	if err != nil {
		t.Fatal(err)
	}
	if !referenced {
		t.Error("axis not referenced after reference move")
	}
}

func TestMoveAbs(t *testing.T) {
	_, c := newTestController(t)
	ax := ready(t, c, "1")
	if err := ax.MoveAbs(5); err != nil {
		t.Fatal(err)
	}
	settle(t, c)
	pos, err := ax.Position()
	if err != nil {
		t.Fatal(err)
	}
	if pos != 5 {
		t.Errorf("position: got %v, want 5", pos)
	}
}

func TestMoveRel(t *testing.T) {
	_, c := newTestController(t)
	ax := ready(t, c, "1")
	if err := ax.MoveAbs(5); err != nil {
		t.Fatal(err)
	}
	settle(t, c)
	if err := ax.MoveRel(-2); err != nil {
		t.Fatal(err)
	}
	settle(t, c)
	pos, err := ax.Position()
	if err != nil {
		t.Fatal(err)
	}
	if pos != 3 {
		t.Errorf("position: got %v, want 3", pos)
	}
}

func TestMoveGuards(t *testing.T) {
	_, c := newTestController(t)
	ax := c.Axis("1")

	// servo off, unreferenced
	err := ax.MoveAbs(1)
	st, ok := err.(Status)
	if !ok || st.Code != 5 {
		t.Errorf("unreferenced move: got %v, want code 5", err)
	}

	ready(t, c, "1")
	err = ax.MoveAbs(1e6)
	st, ok = err.(Status)
	if !ok || st.Code != 7 {
		t.Errorf("out of limits move: got %v, want code 7", err)
	}
}

func TestHaltStopsShortOfTarget(t *testing.T) {
	_, c := newTestController(t)
	ax := ready(t, c, "1")
	if err := ax.MoveAbs(5); err != nil {
		t.Fatal(err)
	}
	if err := ax.Halt(); err != nil {
		t.Fatal(err)
	}
	settle(t, c)
	pos, err := ax.Position()
	if err != nil {
		t.Fatal(err)
	}
	if pos == 5 {
		t.Error("axis reached target despite halt")
	}
}

func TestGoHome(t *testing.T) {
	_, c := newTestController(t)
	ax := ready(t, c, "1")
	if err := ax.MoveAbs(5); err != nil {
		t.Fatal(err)
	}
	settle(t, c)
	if err := ax.GoHome(); err != nil {
		t.Fatal(err)
	}
	settle(t, c)
	pos, err := ax.Position()
	if err != nil {
		t.Fatal(err)
	}
	if pos != 0 {
		t.Errorf("position: got %v, want 0", pos)
	}
}

func TestDefinePositionDoesNotMove(t *testing.T) {
	_, c := newTestController(t)
	ax := c.Axis("1")
	if err := ax.DefinePosition(1.25); err != nil {
		t.Fatal(err)
	}
	moving, err := c.IsMoving("1")
	if err != nil {
		t.Fatal(err)
	}
	if moving {
		t.Error("calibration started a motion")
	}
	pos, err := ax.Position()
	if err != nil {
		t.Fatal(err)
	}
	if pos != 1.25 {
		t.Errorf("position: got %v, want 1.25", pos)
	}
}

func TestVelocitySetGet(t *testing.T) {
	_, c := newTestController(t)
	ax := c.Axis("1")
	if err := ax.SetVelocity(2.5); err != nil {
		t.Fatal(err)
	}
	v, err := ax.Velocity()
	if err != nil {
		t.Fatal(err)
	}
	if v != 2.5 {
		t.Errorf("velocity: got %v, want 2.5", v)
	}
	err = ax.SetVelocity(-1)
	st, ok := err.(Status)
	if !ok || st.Code != 8 {
		t.Errorf("negative velocity: got %v, want code 8", err)
	}
}

func TestAccelerationSetGet(t *testing.T) {
	_, c := newTestController(t)
	ax := c.Axis("1")
	if err := ax.SetAcceleration(4); err != nil {
		t.Fatal(err)
	}
	a, err := ax.Acceleration()
	if err != nil {
		t.Fatal(err)
	}
	if a != 4 {
		t.Errorf("acceleration: got %v, want 4", a)
	}
	err = ax.SetAcceleration(0)
	st, ok := err.(Status)
	if !ok || st.Code != 17 {
		t.Errorf("zero acceleration: got %v, want code 17", err)
	}
}

func TestTravelRange(t *testing.T) {
	_, c := newTestController(t)
	ax := c.Axis("1")
	min, err := ax.TravelMin()
	if err != nil {
		t.Fatal(err)
	}
	max, err := ax.TravelMax()
	if err != nil {
		t.Fatal(err)
	}
	if min >= max {
		t.Errorf("degenerate travel range [%v, %v]", min, max)
	}
}

func TestStageType(t *testing.T) {
	_, c := newTestController(t)
	stage, err := c.Axis("1").StageType()
	if err != nil {
		t.Fatal(err)
	}
	if stage != "L-406.20DD10" {
		t.Errorf("stage: got %q", stage)
	}
}

func TestServoSetGet(t *testing.T) {
	sim, c := newTestController(t)
	ax := c.Axis("1")
	state, err := ax.ServoState()
	if err != nil {
		t.Fatal(err)
	}
	if state != OpenLoop {
		t.Errorf("default servo: got %v", state)
	}
	if err := ax.SetServoState(ClosedLoop); err != nil {
		t.Fatal(err)
	}
	state, err = ax.ServoState()
	if err != nil {
		t.Fatal(err)
	}
	if state != ClosedLoop {
		t.Errorf("servo after set: got %v", state)
	}

	sim.ResetCalls()
	if err := ax.SetServoState(ServoState(7)); err == nil {
		t.Error("accepted unknown servo state")
	}
	if len(sim.Calls()) != 0 {
		t.Errorf("unknown servo state reached the controller: %v", sim.Calls())
	}
}

func TestParameterRouting(t *testing.T) {
	sim, c := newTestController(t)
	ax := c.Axis("1")
	const id = 0x49

	sim.ResetCalls()
	if err := ax.SetParameter(id, false, []float64{2.5}, "Velocity"); err != nil {
		t.Fatal(err)
	}
	values, desc, err := ax.Parameter(id, false, 1)
	if err != nil {
		t.Fatal(err)
	}
	if values[0] != 2.5 || desc != "Velocity" {
		t.Errorf("volatile read back: %v %q", values, desc)
	}
	if sim.CallCount("SPA") != 1 || sim.CallCount("qSPA") != 1 {
		t.Errorf("volatile calls: %v", sim.Calls())
	}
	if sim.CallCount("SEP") != 0 || sim.CallCount("qSEP") != 0 {
		t.Errorf("volatile write touched non-volatile memory: %v", sim.Calls())
	}

	sim.ResetCalls()
	if err := ax.SetParameter(id, true, []float64{9}, "Velocity"); err != nil {
		t.Fatal(err)
	}
	values, _, err = ax.Parameter(id, true, 1)
	if err != nil {
		t.Fatal(err)
	}
	if values[0] != 9 {
		t.Errorf("non-volatile read back: %v", values)
	}
	if sim.CallCount("SEP") != 1 || sim.CallCount("qSEP") != 1 {
		t.Errorf("non-volatile calls: %v", sim.Calls())
	}
	if sim.CallCount("SPA") != 0 || sim.CallCount("qSPA") != 0 {
		t.Errorf("non-volatile write touched the runtime copy: %v", sim.Calls())
	}

	// the two copies are independent
	values, _, err = ax.Parameter(id, false, 1)
	if err != nil {
		t.Fatal(err)
	}
	if values[0] != 2.5 {
		t.Errorf("runtime copy clobbered: %v", values)
	}
}

func TestParameterUnknownID(t *testing.T) {
	_, c := newTestController(t)
	_, _, err := c.Axis("1").Parameter(0x9999, false, 1)
	st, ok := err.(Status)
	if !ok || st.Code != 54 {
		t.Errorf("unknown parameter: got %v, want code 54", err)
	}
}
