package webres

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
)

// WriteGin translates a Response into a gin reply. A serialization failure
// is a programming error and is returned to the caller, which surfaces it
// through the generic 500 path.
func WriteGin(c *gin.Context, resp *Response) error {
	for key, values := range resp.NormalizedHeaders() {
		for _, value := range values {
			c.Writer.Header().Add(key, value)
		}
	}

	switch resp.Kind() {
	case KindText:
		c.Data(resp.Status(), "text/plain; charset=utf-8", []byte(resp.TextBody()))
	case KindJSON:
		body, err := json.Marshal(resp.JSONBody())
		if err != nil {
			return fmt.Errorf("marshal json body: %w", err)
		}
		c.Data(resp.Status(), "application/json; charset=utf-8", body)
	case KindHTML:
		var buf bytes.Buffer
		if err := resp.HTMLBody().Render(&buf); err != nil {
			return fmt.Errorf("render html body: %w", err)
		}
		c.Data(resp.Status(), "text/html; charset=utf-8", buf.Bytes())
	default:
		return fmt.Errorf("unknown response kind %d", resp.Kind())
	}
	return nil
}
