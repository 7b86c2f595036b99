// +build !gcs2dll

package gcs2

import "errors"

// NewDLL reports that the vendor library was not compiled in.  Build with
// the gcs2dll tag and the PI GCS2 development package installed to get the
// real thing; Sim is always available.
func NewDLL() (Native, error) {
	return nil, errors.New("gcs2: built without the gcs2dll tag, vendor library unavailable")
}
