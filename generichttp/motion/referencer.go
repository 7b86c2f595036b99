package motion

import (
	"encoding/json"
	"go/types"
	"io/ioutil"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/hwlab/pigcs2/generichttp"
)

// decodeOptionalBody decodes a JSON body into v, treating an empty body as
// a no-op rather than an error
func decodeOptionalBody(r *http.Request, v interface{}) error {
	bodyContent, err := ioutil.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		return err
	}
	if len(bodyContent) == 0 {
		return nil
	}
	return json.Unmarshal(bodyContent, v)
}

// Referencer describes an interface for axes which must complete a
// reference move before closed-loop motion is allowed
type Referencer interface {
	// GetReferenced returns True if the axis has been referenced
	GetReferenced(string) (bool, error)

	// Reference starts a reference move on the axis seeking the named
	// feature, one of "switch", "negative-limit", "positive-limit"
	Reference(string, string) error
}

// HTTPReference adds routes for the referencer to the route table
func HTTPReference(iface Referencer, table generichttp.RouteTable) {
	table[generichttp.MethodPath{Method: http.MethodGet, Path: "/axis/{axis}/referenced"}] = GetReferenced(iface)
	table[generichttp.MethodPath{Method: http.MethodPost, Path: "/axis/{axis}/reference"}] = Reference(iface)
}

// GetReferenced returns an http.HandlerFunc for r.GetReferenced
func GetReferenced(rf Referencer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		axis := chi.URLParam(r, "axis")
		referenced, err := rf.GetReferenced(axis)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		hp := generichttp.HumanPayload{T: types.Bool, Bool: referenced}
		hp.EncodeAndRespond(w, r)
	}
}

// Reference returns an HTTP handler func which starts a reference move on
// an axis.  The strategy is passed as json {'str': value}; an empty body
// defaults to the reference switch.
func Reference(rf Referencer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		axis := chi.URLParam(r, "axis")
		strategy := "switch"
		strT := generichttp.StrT{}
		err := decodeOptionalBody(r, &strT)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if strT.Str != "" {
			strategy = strT.Str
		}
		err = rf.Reference(axis, strategy)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
