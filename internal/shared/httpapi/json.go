package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// ReadJSON decodes a single JSON object from the request body, rejecting
// unknown fields and trailing data.
func ReadJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// RespondJSON writes data as a JSON response.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondMessage writes the original API's `{message}` envelope.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"message": message})
}

// RespondFailure writes the `{success:false, error}` envelope used by the
// state-machine and cargo-intake endpoints.
func RespondFailure(w http.ResponseWriter, status int, err error) {
	RespondJSON(w, status, map[string]any{"success": false, "error": err.Error()})
}
