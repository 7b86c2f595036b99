package generichttp_test

import (
	"encoding/json"
	"go/types"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/require"

	"github.com/hwlab/pigcs2/generichttp"
)

func TestSubMuxSanitize(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"omc/pi", "/omc/pi/*"},
		{"/omc/pi", "/omc/pi/*"},
		{"/omc/pi/", "/omc/pi/*"},
		{"/omc/pi/*", "/omc/pi/*"},
	} {
		require.Equal(t, tc.want, generichttp.SubMuxSanitize(tc.in), tc.in)
	}
}

func TestRouteTableBindAndEndpoints(t *testing.T) {
	rt := generichttp.RouteTable{
		generichttp.MethodPath{Method: http.MethodGet, Path: "/thing"}:  generichttp.GetFloat(func() (float64, error) { return 42, nil }),
		generichttp.MethodPath{Method: http.MethodPost, Path: "/thing"}: generichttp.SetFloat(func(float64) error { return nil }),
	}
	require.Equal(t, []string{"GET /thing", "POST /thing"}, rt.Endpoints())

	r := chi.NewRouter()
	rt.Bind(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/thing")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	f := generichttp.FloatT{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&f))
	require.Equal(t, 42.0, f.F64)
}

func TestHumanPayloadVariants(t *testing.T) {
	for _, tc := range []struct {
		hp   generichttp.HumanPayload
		want string
	}{
		{generichttp.HumanPayload{T: types.Bool, Bool: true}, `{"bool":true}`},
		{generichttp.HumanPayload{T: types.Int, Int: 7}, `{"int":7}`},
		{generichttp.HumanPayload{T: types.Float64, Float: 1.5}, `{"f64":1.5}`},
		{generichttp.HumanPayload{T: types.String, String: "x"}, `{"str":"x"}`},
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		tc.hp.EncodeAndRespond(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, tc.want, rec.Body.String())
	}
}
