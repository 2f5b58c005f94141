package webres

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteHTTP translates a Response into a plain net/http reply, for variants
// that route with chi instead of gin.
func WriteHTTP(w http.ResponseWriter, resp *Response) error {
	for key, values := range resp.NormalizedHeaders() {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	var body []byte
	switch resp.Kind() {
	case KindText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		body = []byte(resp.TextBody())
	case KindJSON:
		encoded, err := json.Marshal(resp.JSONBody())
		if err != nil {
			return fmt.Errorf("marshal json body: %w", err)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		body = encoded
	case KindHTML:
		var buf bytes.Buffer
		if err := resp.HTMLBody().Render(&buf); err != nil {
			return fmt.Errorf("render html body: %w", err)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		body = buf.Bytes()
	default:
		return fmt.Errorf("unknown response kind %d", resp.Kind())
	}

	w.WriteHeader(resp.Status())
	_, err := w.Write(body)
	return err
}
