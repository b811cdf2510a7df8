package cmd

import (
	"encoding/json"
	"fmt"
	"io"
)

// writeJSON encodes v as JSON to w, handling I/O errors at the boundary.
func writeJSON(w io.Writer, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, "{\"error\":%q}\n", err.Error())
	}
}

// writePassword writes pw to w. Passwords in a batch are newline
// terminated; a single password is written bare.
func writePassword(w io.Writer, pw []byte, batch bool) error {
	if batch {
		pw = append(pw, '\n')
	}
	if _, err := w.Write(pw); err != nil {
		return fmt.Errorf("writing password: %w", err)
	}
	return nil
}
