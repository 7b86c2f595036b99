package motion_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/require"

	"github.com/hwlab/pigcs2/gcs2"
	"github.com/hwlab/pigcs2/generichttp"
	"github.com/hwlab/pigcs2/generichttp/motion"
	"github.com/hwlab/pigcs2/util"
)

const testIDN = "PI E-873 Controller SN 119006725"

// newTestServer stands up an HTTP wrapper around a simulated controller
// with one referenced, closed-loop axis and one cold axis.
func newTestServer(t *testing.T, lims map[string]util.Limiter) (*gcs2.Controller, *httptest.Server) {
	t.Helper()
	sim := gcs2.NewSim(gcs2.SimDevice{IDN: testIDN, Axes: []string{"1", "2"}})
	comm := gcs2.NewCommunication(sim)
	id, err := comm.ConnectUSB(testIDN)
	require.NoError(t, err)
	ctl := gcs2.NewController(sim, id)
	require.NoError(t, ctl.Initialize("1"))
	settle(t, ctl)

	limiter := motion.LimitMiddleware{Limits: lims, Mov: ctl}
	httper := motion.NewHTTPMotionController(ctl)
	limiter.Inject(httper)

	r := chi.NewRouter()
	r.Use(limiter.Check)
	httper.RT().Bind(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return ctl, srv
}

func settle(t *testing.T, ctl *gcs2.Controller) {
	t.Helper()
	for i := 0; i < 10; i++ {
		moving, err := ctl.IsMoving("")
		require.NoError(t, err)
		if !moving {
			return
		}
	}
	t.Fatal("controller still moving after 10 polls")
}

func postJSON(t *testing.T, url string, v interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(v)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func getFloat(t *testing.T, url string) float64 {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	f := generichttp.FloatT{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&f))
	return f.F64
}

func getBool(t *testing.T, url string) bool {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b := generichttp.BoolT{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
	return b.Bool
}

func TestRouteTableComposition(t *testing.T) {
	_, srv := newTestServer(t, nil)
	// every capability of the controller should have been bound
	for _, route := range []string{
		"/axis/1/pos",
		"/axis/1/velocity",
		"/axis/1/acceleration",
		"/axis/1/enabled",
		"/axis/1/inposition",
		"/axis/1/referenced",
	} {
		resp, err := http.Get(srv.URL + route)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, route)
	}
}

func TestMoveOverHTTP(t *testing.T) {
	ctl, srv := newTestServer(t, nil)
	resp := postJSON(t, srv.URL+"/axis/1/pos", generichttp.FloatT{F64: 2})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settle(t, ctl)
	require.Equal(t, 2.0, getFloat(t, srv.URL+"/axis/1/pos"))

	// relative move shifts from the last target
	resp = postJSON(t, srv.URL+"/axis/1/pos?relative=true", generichttp.FloatT{F64: -1})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settle(t, ctl)
	require.Equal(t, 1.0, getFloat(t, srv.URL+"/axis/1/pos"))
}

func TestVelocityOverHTTP(t *testing.T) {
	_, srv := newTestServer(t, nil)
	resp := postJSON(t, srv.URL+"/axis/1/velocity", generichttp.FloatT{F64: 2.5})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2.5, getFloat(t, srv.URL+"/axis/1/velocity"))
}

func TestAccelerationOverHTTP(t *testing.T) {
	_, srv := newTestServer(t, nil)
	resp := postJSON(t, srv.URL+"/axis/1/acceleration", generichttp.FloatT{F64: 4})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 4.0, getFloat(t, srv.URL+"/axis/1/acceleration"))
}

func TestEnableOverHTTP(t *testing.T) {
	_, srv := newTestServer(t, nil)
	resp := postJSON(t, srv.URL+"/axis/2/enabled", generichttp.BoolT{Bool: false})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.False(t, getBool(t, srv.URL+"/axis/2/enabled"))

	resp = postJSON(t, srv.URL+"/axis/2/enabled", generichttp.BoolT{Bool: true})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, getBool(t, srv.URL+"/axis/2/enabled"))
}

func TestReferenceOverHTTP(t *testing.T) {
	ctl, srv := newTestServer(t, nil)
	require.False(t, getBool(t, srv.URL+"/axis/2/referenced"))

	resp := postJSON(t, srv.URL+"/axis/2/reference", generichttp.StrT{Str: "negative-limit"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settle(t, ctl)
	require.True(t, getBool(t, srv.URL+"/axis/2/referenced"))

	resp = postJSON(t, srv.URL+"/axis/2/reference", generichttp.StrT{Str: "sideways"})
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStopOverHTTP(t *testing.T) {
	ctl, srv := newTestServer(t, nil)
	resp := postJSON(t, srv.URL+"/axis/1/pos", generichttp.FloatT{F64: 5})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/axis/1/stop", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settle(t, ctl)
	require.NotEqual(t, 5.0, getFloat(t, srv.URL+"/axis/1/pos"))
}

func TestInPositionOverHTTP(t *testing.T) {
	_, srv := newTestServer(t, nil)
	// poll to completion purely over the HTTP surface
	resp := postJSON(t, srv.URL+"/axis/1/pos", generichttp.FloatT{F64: 1})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	arrived := false
	for i := 0; i < 10; i++ {
		if getBool(t, srv.URL+"/axis/1/inposition") {
			arrived = true
			break
		}
	}
	require.True(t, arrived)
	require.Equal(t, 1.0, getFloat(t, srv.URL+"/axis/1/pos"))
}

func TestLimitMiddleware(t *testing.T) {
	ctl, srv := newTestServer(t, map[string]util.Limiter{"1": {Min: -1, Max: 1}})

	resp := postJSON(t, srv.URL+"/axis/1/pos", generichttp.FloatT{F64: 5})
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/axis/1/pos", generichttp.FloatT{F64: 0.5})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settle(t, ctl)

	// a relative move is checked against position plus command
	resp = postJSON(t, srv.URL+"/axis/1/pos?relative=true", generichttp.FloatT{F64: 0.75})
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// the limits are readable
	resp, err := http.Get(srv.URL + "/axis/1/limits")
	require.NoError(t, err)
	defer resp.Body.Close()
	lim := util.Limiter{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lim))
	require.Equal(t, util.Limiter{Min: -1, Max: 1}, lim)
}

func TestEndpointsListing(t *testing.T) {
	sim := gcs2.NewSim(gcs2.SimDevice{IDN: testIDN, Axes: []string{"1"}})
	comm := gcs2.NewCommunication(sim)
	id, err := comm.ConnectUSB(testIDN)
	require.NoError(t, err)
	httper := motion.NewHTTPMotionController(gcs2.NewController(sim, id))
	endpoints := httper.RT().Endpoints()
	require.Contains(t, endpoints, fmt.Sprintf("%s %s", http.MethodGet, "/axis/{axis}/pos"))
	require.Contains(t, endpoints, fmt.Sprintf("%s %s", http.MethodPost, "/axis/{axis}/home"))
}
