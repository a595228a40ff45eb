package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Printer writes command results as JSON, indented unless compact.
type Printer struct {
	w       io.Writer
	compact bool
}

func New(w io.Writer, compact bool) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w, compact: compact}
}

func (p *Printer) JSON(v interface{}) error {
	var (
		data []byte
		err  error
	)
	if p.compact {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Error reports a failure as a JSON document on the printer's writer.
func (p *Printer) Error(msg string, details string) {
	_ = p.JSON(ErrorResponse{Error: msg, Details: details})
}
