package gcs2

import (
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultBufferLen is the allocation for string-returning calls when
	// the response size is unknown.  Vendor messages fit comfortably.
	DefaultBufferLen = 1024

	// maxResponseLen caps the grow-on-overflow retry loop for large
	// queries (help text, parameter listings).
	maxResponseLen = 1 << 20

	// codeBufferOverflow is the interface-level error code the library
	// records when a caller-supplied buffer was too small.
	codeBufferOverflow = -5
)

// Status is an error from the GCS2 library.  It carries the native error
// code alongside the translated message so callers can branch on the code
// without parsing text.
type Status struct {
	// Code is the native error code, positive for controller errors and
	// negative for interface errors.
	Code int

	// Msg is the vendor's translation of Code.
	Msg string
}

func (s Status) Error() string {
	return fmt.Sprintf("%d - %s", s.Code, s.Msg)
}

// ErrTranslation indicates the error translator itself failed because the
// default buffer could not hold the message.  This is a violation of the
// binding's sizing assumption, not a controller fault, and is reported
// distinctly from translated controller errors.
type ErrTranslation struct {
	// Code is the error code that was being translated.
	Code int

	// BufferLen is the size that proved insufficient.
	BufferLen int
}

func (e ErrTranslation) Error() string {
	return fmt.Sprintf("buffer of %d bytes too small to translate error code %d", e.BufferLen, e.Code)
}

// translate fetches the vendor's message for code into a buffer of n bytes.
func translate(api Native, code, n int) (string, error) {
	buf := make([]byte, n)
	if !api.TranslateError(code, buf) {
		return "", ErrTranslation{Code: code, BufferLen: n}
	}
	return decodeASCII(buf), nil
}

// statusErr builds the Status for a known-bad code.
func statusErr(api Native, code int) error {
	msg, err := translate(api, code, DefaultBufferLen)
	if err != nil {
		return err
	}
	return Status{Code: code, Msg: msg}
}

// decodeASCII interprets buf as a NUL-terminated ASCII string, replacing
// any byte outside the ASCII range rather than failing.
func decodeASCII(buf []byte) string {
	end := len(buf)
	for i, b := range buf {
		if b == 0 {
			end = i
			break
		}
	}
	buf = buf[:end]
	out := make([]rune, len(buf))
	for i, b := range buf {
		if b < utf8.RuneSelf {
			out[i] = rune(b)
		} else {
			out[i] = utf8.RuneError
		}
	}
	return string(out)
}
