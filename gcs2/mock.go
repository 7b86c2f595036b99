package gcs2

import (
	"fmt"
	"strings"
	"sync"
)

// movePolls is how many IsMoving polls a simulated motion takes to finish.
const movePolls = 2

// SimDevice describes one device the simulator exposes to enumeration.
type SimDevice struct {
	// IDN is the enumeration descriptor, e.g.
	// "PI E-873 Controller SN 119006725".
	IDN string

	// Axes are the active axis identifiers.
	Axes []string

	// Deactivated axes appear only in the all-axes query.
	Deactivated []string

	// Stage is the stage name reported for every axis.
	Stage string

	// Chain is the member count when the device is a daisy chain master.
	// Zero or one means a directly connectable device.
	Chain int
}

type simParam struct {
	values []float64
	desc   string
}

type simAxis struct {
	enabled    bool
	servo      int
	refMode    int
	referenced bool

	// moving counts down one step per IsMoving poll; at zero the axis
	// arrives at target
	moving int
	pos    float64
	target float64

	vel        float64
	acc        float64
	tmin, tmax float64

	volatile  map[uint32]simParam
	persisted map[uint32]simParam
}

type simConn struct {
	dev     *SimDevice
	axes    map[string]*simAxis
	lastErr int
}

type simChain struct {
	dev *SimDevice
	n   int
}

type simThread struct {
	dev   *SimDevice
	polls int
}

// Sim is an in-memory stand-in for the vendor library.  It holds axis
// state per simulated controller and records the mnemonic of every
// command-level entry point invoked, so tests can assert which native
// call a binding path dispatched to.
type Sim struct {
	sync.Mutex

	devices []SimDevice
	conns   map[int]*simConn
	chains  map[int]*simChain
	threads map[int]*simThread
	nextID  int
	scanMax int
	calls   []string
}

var _ Native = (*Sim)(nil)

// NewSim returns a simulator exposing the given devices.
func NewSim(devices ...SimDevice) *Sim {
	return &Sim{
		devices: devices,
		conns:   map[int]*simConn{},
		chains:  map[int]*simChain{},
		threads: map[int]*simThread{},
		nextID:  1,
		scanMax: 16}
}

// Calls returns the mnemonics of the entry points invoked so far.
func (s *Sim) Calls() []string {
	s.Lock()
	defer s.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many times the entry point with the given
// mnemonic was invoked.
func (s *Sim) CallCount(mnemonic string) int {
	s.Lock()
	defer s.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == mnemonic {
			n++
		}
	}
	return n
}

// ResetCalls clears the recorded entry points.
func (s *Sim) ResetCalls() {
	s.Lock()
	defer s.Unlock()
	s.calls = nil
}

func (s *Sim) record(mnemonic string) {
	s.calls = append(s.calls, mnemonic)
}

func (s *Sim) find(desc string) *SimDevice {
	for i := range s.devices {
		if s.devices[i].IDN == desc {
			return &s.devices[i]
		}
	}
	return nil
}

func (s *Sim) open(dev *SimDevice) int {
	conn := &simConn{dev: dev, axes: map[string]*simAxis{}}
	for _, name := range append(append([]string{}, dev.Axes...), dev.Deactivated...) {
		ax := &simAxis{
			enabled:   true,
			vel:       1,
			acc:       1,
			tmin:      -10,
			tmax:      10,
			refMode:   int(AbsoluteReference),
			volatile:  map[uint32]simParam{},
			persisted: map[uint32]simParam{}}
		for _, d := range dev.Deactivated {
			if d == name {
				ax.enabled = false
			}
		}
		conn.axes[name] = ax
	}
	id := s.nextID
	s.nextID++
	s.conns[id] = conn
	return id
}

// fail records code as the connection's last error and reports failure,
// matching the two-step protocol of command-scoped calls.
func (conn *simConn) fail(code int) bool {
	conn.lastErr = code
	return false
}

// simErrors is a trimmed copy of the vendor's code-to-text table, enough
// to translate everything the simulator can produce plus common
// controller faults.
var simErrors = map[int]string{
	0:  "No error",
	1:  "Parameter syntax error",
	2:  "Unknown command",
	5:  "Unallowable move attempted on unreferenced axis, or move attempted with servo off",
	7:  "Position out of limits",
	8:  "Velocity out of limits",
	10: "Controller was stopped by command",
	15: "Invalid axis identifier",
	17: "Parameter out of range",
	23: "Illegal axis",
	24: "Incorrect number of parameters",
	25: "Invalid floating point number",
	46: "OPM (Optical Power Meter) missing",
	54: "Unknown parameter",
	56: "Password invalid",
	61: "Command execution not possible while autozero is running",
	64: "Parameter is read-only",
	-1: "Error during com operation (could not be specified)",
	-2: "Error while sending data",
	-3: "Error while receiving data",
	-5: "Buffer overflow",
	-7: "Timeout while waiting for response",
	-9: "No connection to controller",
}

// writeString copies a NUL-terminated payload into buf, reporting whether
// it fit.  Callers translate a miss into the overflow error code proper
// to their scope.
func writeString(buf []byte, payload string) bool {
	if len(buf) < len(payload)+1 {
		return false
	}
	n := copy(buf, payload)
	buf[n] = 0
	return true
}

func (s *Sim) EnumerateUSB(buf []byte, filter string) int {
	s.Lock()
	defer s.Unlock()
	var lines []string
	for i := range s.devices {
		if strings.Contains(strings.ToLower(s.devices[i].IDN), strings.ToLower(filter)) {
			lines = append(lines, s.devices[i].IDN)
		}
	}
	if !writeString(buf, strings.Join(lines, "\n")) {
		return codeBufferOverflow
	}
	return len(lines)
}

func (s *Sim) ConnectUSB(desc string) int {
	s.Lock()
	defer s.Unlock()
	dev := s.find(desc)
	if dev == nil {
		return -9
	}
	return s.open(dev)
}

func (s *Sim) ConnectUSBWithBaud(desc string, baud int) int {
	if baud <= 0 {
		return -1
	}
	return s.ConnectUSB(desc)
}

func (s *Sim) TryConnectUSB(desc string) int {
	s.Lock()
	defer s.Unlock()
	dev := s.find(desc)
	if dev == nil {
		return -9
	}
	id := s.nextID
	s.nextID++
	s.threads[id] = &simThread{dev: dev, polls: movePolls}
	return id
}

func (s *Sim) IsConnecting(thread int) bool {
	s.Lock()
	defer s.Unlock()
	t, ok := s.threads[thread]
	if !ok {
		return false
	}
	if t.polls > 0 {
		t.polls--
		return true
	}
	return false
}

func (s *Sim) GetControllerID(thread int) int {
	s.Lock()
	defer s.Unlock()
	t, ok := s.threads[thread]
	if !ok || t.polls > 0 {
		return -1
	}
	delete(s.threads, thread)
	return s.open(t.dev)
}

func (s *Sim) IsConnected(ctrl int) bool {
	s.Lock()
	defer s.Unlock()
	_, ok := s.conns[ctrl]
	return ok
}

func (s *Sim) SetDaisyChainScanMax(max int) int {
	s.Lock()
	defer s.Unlock()
	if max < 1 {
		return -1
	}
	s.scanMax = max
	return 0
}

func (s *Sim) OpenUSBDaisyChain(desc string, nDevices *int, buf []byte) int {
	s.Lock()
	defer s.Unlock()
	dev := s.find(desc)
	if dev == nil || dev.Chain < 2 {
		return -9
	}
	n := dev.Chain
	if n > s.scanMax {
		n = s.scanMax
	}
	lines := make([]string, n)
	for i := range lines {
		lines[i] = dev.IDN
	}
	if !writeString(buf, strings.Join(lines, "\n")) {
		return codeBufferOverflow
	}
	*nDevices = n
	id := s.nextID
	s.nextID++
	s.chains[id] = &simChain{dev: dev, n: n}
	return id
}

func (s *Sim) ConnectDaisyChainDevice(daisy, device int) int {
	s.Lock()
	defer s.Unlock()
	chain, ok := s.chains[daisy]
	if !ok || device < 1 || device > chain.n {
		return -1
	}
	return s.open(chain.dev)
}

func (s *Sim) CloseDaisyChain(daisy int) {
	s.Lock()
	defer s.Unlock()
	delete(s.chains, daisy)
}

func (s *Sim) CloseConnection(ctrl int) {
	s.Lock()
	defer s.Unlock()
	delete(s.conns, ctrl)
}

func (s *Sim) SetErrorCheck(ctrl int, on bool) {
	s.Lock()
	defer s.Unlock()
	s.record("SetErrorCheck")
}

func (s *Sim) GetError(ctrl int) int {
	s.Lock()
	defer s.Unlock()
	conn, ok := s.conns[ctrl]
	if !ok {
		return -9
	}
	code := conn.lastErr
	conn.lastErr = 0
	return code
}

func (s *Sim) TranslateError(code int, buf []byte) bool {
	msg, ok := simErrors[code]
	if !ok {
		msg = fmt.Sprintf("Unknown error code %d", code)
	}
	return writeString(buf, msg)
}

// step advances simulated time by one poll: moving axes count down and
// arrive at their target when the countdown ends.
func (conn *simConn) step() {
	for _, ax := range conn.axes {
		if ax.moving > 0 {
			ax.moving--
			if ax.moving == 0 {
				ax.pos = ax.target
			}
		}
	}
}

func (s *Sim) IsMoving(ctrl int, axes string, moving *bool) bool {
	s.Lock()
	defer s.Unlock()
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	conn.step()
	if axes == "" {
		for _, ax := range conn.axes {
			if ax.moving > 0 {
				*moving = true
				return true
			}
		}
		*moving = false
		return true
	}
	ax, ok := conn.axes[axes]
	if !ok {
		return conn.fail(15)
	}
	*moving = ax.moving > 0
	return true
}

func (s *Sim) IsControllerReady(ctrl int, ready *bool) bool {
	s.Lock()
	defer s.Unlock()
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	for _, ax := range conn.axes {
		if ax.moving > 0 {
			*ready = false
			return true
		}
	}
	*ready = true
	return true
}

func (s *Sim) IsRunningMacro(ctrl int, running *bool) bool {
	s.Lock()
	defer s.Unlock()
	if _, ok := s.conns[ctrl]; !ok {
		return false
	}
	*running = false
	return true
}

// axis fetches a command target, recording the invalid-axis fault for
// unknown names.
func (conn *simConn) axis(name string) (*simAxis, bool) {
	ax, ok := conn.axes[name]
	if !ok {
		conn.fail(15)
	}
	return ax, ok
}

func (s *Sim) EnableAxis(ctrl int, axis string, on bool) bool {
	s.Lock()
	defer s.Unlock()
	s.record("EAX")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	ax.enabled = on
	return true
}

func (s *Sim) GetAxisEnabled(ctrl int, axis string, out *bool) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qEAX")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	*out = ax.enabled
	return true
}

// listing answers a controller-scoped text query, surfacing the overflow
// code when the caller's buffer is too small.
func (conn *simConn) listing(buf []byte, payload string) bool {
	if !writeString(buf, payload) {
		return conn.fail(codeBufferOverflow)
	}
	return true
}

func (s *Sim) GetAxes(ctrl int, buf []byte) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qSAI")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	return conn.listing(buf, strings.Join(conn.dev.Axes, "\n"))
}

func (s *Sim) GetAllAxes(ctrl int, buf []byte) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qSAI_ALL")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	all := append(append([]string{}, conn.dev.Axes...), conn.dev.Deactivated...)
	return conn.listing(buf, strings.Join(all, "\n"))
}

func (s *Sim) StopAll(ctrl int) bool {
	s.Lock()
	defer s.Unlock()
	s.record("StopAll")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	for _, ax := range conn.axes {
		if ax.moving > 0 {
			// an abrupt stop leaves the axis where it is
			ax.moving = 0
			ax.target = ax.pos
		}
	}
	return true
}

// simHelp is a plausible excerpt of a controller's command listing, long
// enough to overflow small buffers in tests.
const simHelp = `#5 request motion status
#24 stop all axes
*IDN? get device identification
ACC set acceleration
ACC? get acceleration
CST? get assignment of stages to axes
EAX set axis activation
EAX? get axis activation
FNL fast reference move to negative limit
FPL fast reference move to positive limit
FRF fast reference move to reference switch
GOH go to home position
HLT halt motion smoothly
HPA? get list of available parameters
MOV set target position
MVR set target relative to current position
POS set real position
POS? get real position
RON set reference mode
RON? get reference mode
SAI? get list of current axis identifiers
SEP set non-volatile memory parameters
SEP? get non-volatile memory parameters
SPA set volatile memory parameters
SPA? get volatile memory parameters
SVO set servo mode
SVO? get servo mode
TMN? get minimum commandable position
TMX? get maximum commandable position
VEL set closed-loop velocity
VEL? get closed-loop velocity
VER? get versions of firmware and drivers`

func (s *Sim) GetHelp(ctrl int, buf []byte) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qHLP")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	return conn.listing(buf, simHelp)
}

func (s *Sim) GetIdentification(ctrl int, buf []byte) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qIDN")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	return conn.listing(buf, conn.dev.IDN)
}

func (s *Sim) GetParameterInfo(ctrl int, buf []byte) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qHPA")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	listing := "0x49=\t0\t1\t2\t-\tVelocity\n0x4A=\t0\t1\t2\t-\tAcceleration"
	return conn.listing(buf, listing)
}

func (s *Sim) GetValidCharacters(ctrl int, buf []byte) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qTVI")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	return conn.listing(buf, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
}

func (s *Sim) GetVersion(ctrl int, buf []byte) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qVER")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	version := "FW_DSP: V1.0.0\nPI_GCS2_DLL: V3.11.3\nFW_ARM: V2.1.5"
	return conn.listing(buf, version)
}

func (s *Sim) GetReferenceMode(ctrl int, axis string, out *int) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qRON")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	*out = ax.refMode
	return true
}

func (s *Sim) SetReferenceMode(ctrl int, axis string, mode int) bool {
	s.Lock()
	defer s.Unlock()
	s.record("RON")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	ax.refMode = mode
	return true
}

func (s *Sim) GetReferenced(ctrl int, axis string, out *bool) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qFRF")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	*out = ax.referenced
	return true
}

// reference runs the common part of the three reference moves.
func (conn *simConn) reference(axis string, target float64) bool {
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	ax.referenced = true
	ax.target = target
	ax.moving = movePolls
	return true
}

func (s *Sim) ReferenceToSwitch(ctrl int, axis string) bool {
	s.Lock()
	defer s.Unlock()
	s.record("FRF")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	return conn.reference(axis, 0)
}

func (s *Sim) ReferenceToNegativeLimit(ctrl int, axis string) bool {
	s.Lock()
	defer s.Unlock()
	s.record("FNL")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	return conn.reference(axis, ax.tmin)
}

func (s *Sim) ReferenceToPositiveLimit(ctrl int, axis string) bool {
	s.Lock()
	defer s.Unlock()
	s.record("FPL")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	return conn.reference(axis, ax.tmax)
}

// move validates and starts a closed-loop motion toward target.
func (conn *simConn) move(axis string, target float64) bool {
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	if ax.servo != int(ClosedLoop) || !ax.referenced {
		return conn.fail(5)
	}
	if target < ax.tmin || target > ax.tmax {
		return conn.fail(7)
	}
	ax.target = target
	ax.moving = movePolls
	return true
}

func (s *Sim) GoHome(ctrl int, axis string) bool {
	s.Lock()
	defer s.Unlock()
	s.record("GOH")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	return conn.move(axis, 0)
}

func (s *Sim) Halt(ctrl int, axis string) bool {
	s.Lock()
	defer s.Unlock()
	s.record("HLT")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	if ax.moving > 0 {
		ax.moving = 0
		ax.target = ax.pos
	}
	return true
}

func (s *Sim) GetPosition(ctrl int, axis string, out *float64) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qPOS")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	*out = ax.pos
	return true
}

func (s *Sim) SetPosition(ctrl int, axis string, pos float64) bool {
	s.Lock()
	defer s.Unlock()
	s.record("POS")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	// calibration only: the stage does not move
	ax.pos = pos
	ax.target = pos
	return true
}

func (s *Sim) MoveAbs(ctrl int, axis string, pos float64) bool {
	s.Lock()
	defer s.Unlock()
	s.record("MOV")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	return conn.move(axis, pos)
}

func (s *Sim) MoveRel(ctrl int, axis string, delta float64) bool {
	s.Lock()
	defer s.Unlock()
	s.record("MVR")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	return conn.move(axis, ax.target+delta)
}

func (s *Sim) GetVelocity(ctrl int, axis string, out *float64) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qVEL")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	*out = ax.vel
	return true
}

func (s *Sim) SetVelocity(ctrl int, axis string, v float64) bool {
	s.Lock()
	defer s.Unlock()
	s.record("VEL")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	if v <= 0 {
		return conn.fail(8)
	}
	ax.vel = v
	return true
}

func (s *Sim) GetAcceleration(ctrl int, axis string, out *float64) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qACC")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	*out = ax.acc
	return true
}

func (s *Sim) SetAcceleration(ctrl int, axis string, a float64) bool {
	s.Lock()
	defer s.Unlock()
	s.record("ACC")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	if a <= 0 {
		return conn.fail(17)
	}
	ax.acc = a
	return true
}

func (s *Sim) GetTravelMin(ctrl int, axis string, out *float64) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qTMN")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	*out = ax.tmin
	return true
}

func (s *Sim) GetTravelMax(ctrl int, axis string, out *float64) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qTMX")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	*out = ax.tmax
	return true
}

func (s *Sim) GetStageType(ctrl int, axis string, buf []byte) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qCST")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	if _, ok := conn.axis(axis); !ok {
		return false
	}
	stage := conn.dev.Stage
	if stage == "" {
		stage = "NOSTAGE"
	}
	return conn.listing(buf, stage)
}

// getParams answers qSPA/qSEP against the given parameter table.
func (conn *simConn) getParams(table func(*simAxis) map[uint32]simParam, axis string, ids []uint32, values []float64, buf []byte) bool {
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	p, ok := table(ax)[ids[0]]
	if !ok {
		return conn.fail(54)
	}
	copy(values, p.values)
	return conn.listing(buf, p.desc)
}

func (conn *simConn) setParams(table func(*simAxis) map[uint32]simParam, axis string, ids []uint32, values []float64, desc string) bool {
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	table(ax)[ids[0]] = simParam{values: vals, desc: desc}
	return true
}

func volatileTable(ax *simAxis) map[uint32]simParam  { return ax.volatile }
func persistedTable(ax *simAxis) map[uint32]simParam { return ax.persisted }

func (s *Sim) GetParameters(ctrl int, axis string, ids []uint32, values []float64, buf []byte) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qSPA")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	return conn.getParams(volatileTable, axis, ids, values, buf)
}

func (s *Sim) SetParameters(ctrl int, axis string, ids []uint32, values []float64, desc string) bool {
	s.Lock()
	defer s.Unlock()
	s.record("SPA")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	return conn.setParams(volatileTable, axis, ids, values, desc)
}

func (s *Sim) GetParametersPersisted(ctrl int, axis string, ids []uint32, values []float64, buf []byte) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qSEP")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	return conn.getParams(persistedTable, axis, ids, values, buf)
}

func (s *Sim) SetParametersPersisted(ctrl int, password, axis string, ids []uint32, values []float64, desc string) bool {
	s.Lock()
	defer s.Unlock()
	s.record("SEP")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	if password != eepromPassword {
		return conn.fail(56)
	}
	return conn.setParams(persistedTable, axis, ids, values, desc)
}

func (s *Sim) GetServo(ctrl int, axis string, out *int) bool {
	s.Lock()
	defer s.Unlock()
	s.record("qSVO")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	*out = ax.servo
	return true
}

func (s *Sim) SetServo(ctrl int, axis string, state int) bool {
	s.Lock()
	defer s.Unlock()
	s.record("SVO")
	conn, ok := s.conns[ctrl]
	if !ok {
		return false
	}
	ax, ok := conn.axis(axis)
	if !ok {
		return false
	}
	ax.servo = state
	return true
}
