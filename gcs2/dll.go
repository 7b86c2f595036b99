// +build gcs2dll

package gcs2

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lpi_pi_gcs2
#include <stdlib.h>
#include <PI_GCS2_DLL.h>
*/
import "C"
import "unsafe"

// DLL forwards every Native method 1:1 to the vendor library.  Build with
// the gcs2dll tag and the PI GCS2 development package installed; without
// the tag, only Sim is available.
type DLL struct{}

// NewDLL returns the vendor library as a Native.
func NewDLL() (Native, error) {
	return DLL{}, nil
}

func cbool(b bool) C.BOOL {
	if b {
		return C.BOOL(1)
	}
	return C.BOOL(0)
}

func gobool(b C.BOOL) bool {
	return b != 0
}

// charbuf views a Go byte slice as the char*/length pair C expects.
func charbuf(buf []byte) (*C.char, C.int) {
	return (*C.char)(unsafe.Pointer(&buf[0])), C.int(len(buf))
}

func (DLL) EnumerateUSB(buf []byte, filter string) int {
	cfilter := C.CString(filter)
	defer C.free(unsafe.Pointer(cfilter))
	ptr, n := charbuf(buf)
	return int(C.PI_EnumerateUSB(ptr, n, cfilter))
}

func (DLL) ConnectUSB(desc string) int {
	cdesc := C.CString(desc)
	defer C.free(unsafe.Pointer(cdesc))
	return int(C.PI_ConnectUSB(cdesc))
}

func (DLL) ConnectUSBWithBaud(desc string, baud int) int {
	cdesc := C.CString(desc)
	defer C.free(unsafe.Pointer(cdesc))
	return int(C.PI_ConnectUSBWithBaudRate(cdesc, C.int(baud)))
}

func (DLL) TryConnectUSB(desc string) int {
	cdesc := C.CString(desc)
	defer C.free(unsafe.Pointer(cdesc))
	return int(C.PI_TryConnectUSB(cdesc))
}

func (DLL) IsConnecting(thread int) bool {
	return gobool(C.PI_IsConnecting(C.int(thread)))
}

func (DLL) GetControllerID(thread int) int {
	return int(C.PI_GetControllerID(C.int(thread)))
}

func (DLL) IsConnected(ctrl int) bool {
	return gobool(C.PI_IsConnected(C.int(ctrl)))
}

func (DLL) SetDaisyChainScanMax(max int) int {
	return int(C.PI_SetDaisyChainScanMaxDeviceID(C.int(max)))
}

func (DLL) OpenUSBDaisyChain(desc string, nDevices *int, buf []byte) int {
	cdesc := C.CString(desc)
	defer C.free(unsafe.Pointer(cdesc))
	var n C.int
	ptr, sz := charbuf(buf)
	daisy := int(C.PI_OpenUSBDaisyChain(cdesc, &n, ptr, sz))
	*nDevices = int(n)
	return daisy
}

func (DLL) ConnectDaisyChainDevice(daisy, device int) int {
	return int(C.PI_ConnectDaisyChainDevice(C.int(daisy), C.int(device)))
}

func (DLL) CloseDaisyChain(daisy int) {
	C.PI_CloseDaisyChain(C.int(daisy))
}

func (DLL) CloseConnection(ctrl int) {
	C.PI_CloseConnection(C.int(ctrl))
}

func (DLL) SetErrorCheck(ctrl int, on bool) {
	C.PI_SetErrorCheck(C.int(ctrl), cbool(on))
}

func (DLL) GetError(ctrl int) int {
	return int(C.PI_GetError(C.int(ctrl)))
}

func (DLL) TranslateError(code int, buf []byte) bool {
	ptr, n := charbuf(buf)
	return gobool(C.PI_TranslateError(C.int(code), ptr, n))
}

func (DLL) IsMoving(ctrl int, axes string, moving *bool) bool {
	caxes := C.CString(axes)
	defer C.free(unsafe.Pointer(caxes))
	var b C.BOOL
	ok := gobool(C.PI_IsMoving(C.int(ctrl), caxes, &b))
	*moving = gobool(b)
	return ok
}

func (DLL) IsControllerReady(ctrl int, ready *bool) bool {
	var i C.int
	ok := gobool(C.PI_IsControllerReady(C.int(ctrl), &i))
	*ready = i != 0
	return ok
}

func (DLL) IsRunningMacro(ctrl int, running *bool) bool {
	var b C.BOOL
	ok := gobool(C.PI_IsRunningMacro(C.int(ctrl), &b))
	*running = gobool(b)
	return ok
}

func (DLL) EnableAxis(ctrl int, axis string, on bool) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	b := cbool(on)
	return gobool(C.PI_EAX(C.int(ctrl), caxis, &b))
}

func (DLL) GetAxisEnabled(ctrl int, axis string, out *bool) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	var b C.BOOL
	ok := gobool(C.PI_qEAX(C.int(ctrl), caxis, &b))
	*out = gobool(b)
	return ok
}

func (DLL) GetAxes(ctrl int, buf []byte) bool {
	ptr, n := charbuf(buf)
	return gobool(C.PI_qSAI(C.int(ctrl), ptr, n))
}

func (DLL) GetAllAxes(ctrl int, buf []byte) bool {
	ptr, n := charbuf(buf)
	return gobool(C.PI_qSAI_ALL(C.int(ctrl), ptr, n))
}

func (DLL) StopAll(ctrl int) bool {
	return gobool(C.PI_StopAll(C.int(ctrl)))
}

func (DLL) GetHelp(ctrl int, buf []byte) bool {
	ptr, n := charbuf(buf)
	return gobool(C.PI_qHLP(C.int(ctrl), ptr, n))
}

func (DLL) GetIdentification(ctrl int, buf []byte) bool {
	ptr, n := charbuf(buf)
	return gobool(C.PI_qIDN(C.int(ctrl), ptr, n))
}

func (DLL) GetParameterInfo(ctrl int, buf []byte) bool {
	ptr, n := charbuf(buf)
	return gobool(C.PI_qHPA(C.int(ctrl), ptr, n))
}

func (DLL) GetValidCharacters(ctrl int, buf []byte) bool {
	ptr, n := charbuf(buf)
	return gobool(C.PI_qTVI(C.int(ctrl), ptr, n))
}

func (DLL) GetVersion(ctrl int, buf []byte) bool {
	ptr, n := charbuf(buf)
	return gobool(C.PI_qVER(C.int(ctrl), ptr, n))
}

func (DLL) GetReferenceMode(ctrl int, axis string, out *int) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	var b C.BOOL
	ok := gobool(C.PI_qRON(C.int(ctrl), caxis, &b))
	*out = int(b)
	return ok
}

func (DLL) SetReferenceMode(ctrl int, axis string, mode int) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	b := C.BOOL(mode)
	return gobool(C.PI_RON(C.int(ctrl), caxis, &b))
}

func (DLL) GetReferenced(ctrl int, axis string, out *bool) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	var b C.BOOL
	ok := gobool(C.PI_qFRF(C.int(ctrl), caxis, &b))
	*out = gobool(b)
	return ok
}

func (DLL) ReferenceToSwitch(ctrl int, axis string) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	return gobool(C.PI_FRF(C.int(ctrl), caxis))
}

func (DLL) ReferenceToNegativeLimit(ctrl int, axis string) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	return gobool(C.PI_FNL(C.int(ctrl), caxis))
}

func (DLL) ReferenceToPositiveLimit(ctrl int, axis string) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	return gobool(C.PI_FPL(C.int(ctrl), caxis))
}

func (DLL) GoHome(ctrl int, axis string) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	return gobool(C.PI_GOH(C.int(ctrl), caxis))
}

func (DLL) Halt(ctrl int, axis string) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	return gobool(C.PI_HLT(C.int(ctrl), caxis))
}

func (DLL) GetPosition(ctrl int, axis string, out *float64) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	var d C.double
	ok := gobool(C.PI_qPOS(C.int(ctrl), caxis, &d))
	*out = float64(d)
	return ok
}

func (DLL) SetPosition(ctrl int, axis string, pos float64) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	d := C.double(pos)
	return gobool(C.PI_POS(C.int(ctrl), caxis, &d))
}

func (DLL) MoveAbs(ctrl int, axis string, pos float64) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	d := C.double(pos)
	return gobool(C.PI_MOV(C.int(ctrl), caxis, &d))
}

func (DLL) MoveRel(ctrl int, axis string, delta float64) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	d := C.double(delta)
	return gobool(C.PI_MVR(C.int(ctrl), caxis, &d))
}

func (DLL) GetVelocity(ctrl int, axis string, out *float64) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	var d C.double
	ok := gobool(C.PI_qVEL(C.int(ctrl), caxis, &d))
	*out = float64(d)
	return ok
}

func (DLL) SetVelocity(ctrl int, axis string, v float64) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	d := C.double(v)
	return gobool(C.PI_VEL(C.int(ctrl), caxis, &d))
}

func (DLL) GetAcceleration(ctrl int, axis string, out *float64) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	var d C.double
	ok := gobool(C.PI_qACC(C.int(ctrl), caxis, &d))
	*out = float64(d)
	return ok
}

func (DLL) SetAcceleration(ctrl int, axis string, a float64) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	d := C.double(a)
	return gobool(C.PI_ACC(C.int(ctrl), caxis, &d))
}

func (DLL) GetTravelMin(ctrl int, axis string, out *float64) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	var d C.double
	ok := gobool(C.PI_qTMN(C.int(ctrl), caxis, &d))
	*out = float64(d)
	return ok
}

func (DLL) GetTravelMax(ctrl int, axis string, out *float64) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	var d C.double
	ok := gobool(C.PI_qTMX(C.int(ctrl), caxis, &d))
	*out = float64(d)
	return ok
}

func (DLL) GetStageType(ctrl int, axis string, buf []byte) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	ptr, n := charbuf(buf)
	return gobool(C.PI_qCST(C.int(ctrl), caxis, ptr, n))
}

func (DLL) GetParameters(ctrl int, axis string, ids []uint32, values []float64, buf []byte) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	ptr, n := charbuf(buf)
	return gobool(C.PI_qSPA(C.int(ctrl), caxis,
		(*C.uint)(unsafe.Pointer(&ids[0])),
		(*C.double)(unsafe.Pointer(&values[0])),
		ptr, n))
}

func (DLL) SetParameters(ctrl int, axis string, ids []uint32, values []float64, desc string) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	cdesc := C.CString(desc)
	defer C.free(unsafe.Pointer(cdesc))
	return gobool(C.PI_SPA(C.int(ctrl), caxis,
		(*C.uint)(unsafe.Pointer(&ids[0])),
		(*C.double)(unsafe.Pointer(&values[0])),
		cdesc))
}

func (DLL) GetParametersPersisted(ctrl int, axis string, ids []uint32, values []float64, buf []byte) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	ptr, n := charbuf(buf)
	return gobool(C.PI_qSEP(C.int(ctrl), caxis,
		(*C.uint)(unsafe.Pointer(&ids[0])),
		(*C.double)(unsafe.Pointer(&values[0])),
		ptr, n))
}

func (DLL) SetParametersPersisted(ctrl int, password, axis string, ids []uint32, values []float64, desc string) bool {
	cpass := C.CString(password)
	defer C.free(unsafe.Pointer(cpass))
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	cdesc := C.CString(desc)
	defer C.free(unsafe.Pointer(cdesc))
	return gobool(C.PI_SEP(C.int(ctrl), cpass, caxis,
		(*C.uint)(unsafe.Pointer(&ids[0])),
		(*C.double)(unsafe.Pointer(&values[0])),
		cdesc))
}

func (DLL) GetServo(ctrl int, axis string, out *int) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	var b C.BOOL
	ok := gobool(C.PI_qSVO(C.int(ctrl), caxis, &b))
	*out = int(b)
	return ok
}

func (DLL) SetServo(ctrl int, axis string, state int) bool {
	caxis := C.CString(axis)
	defer C.free(unsafe.Pointer(caxis))
	b := C.BOOL(state)
	return gobool(C.PI_SVO(C.int(ctrl), caxis, &b))
}
