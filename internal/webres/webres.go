// Package webres holds the framework-independent response model. Handlers
// build a Response value and hand it to one of the adapters (gin, net/http,
// lambda), which dispatches on the variant and serializes the body.
package webres

import (
	"io"
	"strings"
)

type Kind int

const (
	KindText Kind = iota + 1
	KindJSON
	KindHTML
)

// Renderer is what the HTML variant carries: a page model that knows how to
// write itself as an HTML document.
type Renderer interface {
	Render(w io.Writer) error
}

type headerEntry struct {
	Name   string
	Values []string
}

// Response is an immutable HTTP-level reply. Exactly one variant is active,
// determined by the constructor used. WithStatus and WithHeader return
// copies, the receiver is never mutated.
type Response struct {
	kind    Kind
	status  int
	headers []headerEntry

	text string
	json any
	html Renderer
}

func Text(body string) *Response {
	return &Response{kind: KindText, status: 200, text: body}
}

func JSON(body any) *Response {
	return &Response{kind: KindJSON, status: 200, json: body}
}

func HTML(page Renderer) *Response {
	return &Response{kind: KindHTML, status: 200, html: page}
}

func (r *Response) Kind() Kind { return r.kind }

func (r *Response) Status() int { return r.status }

func (r *Response) TextBody() string { return r.text }

func (r *Response) JSONBody() any { return r.json }

func (r *Response) HTMLBody() Renderer { return r.html }

func (r *Response) WithStatus(code int) *Response {
	out := r.clone()
	out.status = code
	return out
}

// WithHeader appends value to any existing values for name. Names match
// case-insensitively; the casing of the first call is kept for display.
func (r *Response) WithHeader(name, value string) *Response {
	out := r.clone()
	for i := range out.headers {
		if strings.EqualFold(out.headers[i].Name, name) {
			out.headers[i].Values = append(out.headers[i].Values, value)
			return out
		}
	}
	out.headers = append(out.headers, headerEntry{Name: name, Values: []string{value}})
	return out
}

// NormalizedHeaders returns the header mapping with keys lower-cased and
// values of duplicate-keyed entries concatenated in insertion order.
func (r *Response) NormalizedHeaders() map[string][]string {
	if len(r.headers) == 0 {
		return map[string][]string{}
	}
	out := make(map[string][]string, len(r.headers))
	for _, h := range r.headers {
		key := strings.ToLower(h.Name)
		out[key] = append(out[key], h.Values...)
	}
	return out
}

func (r *Response) clone() *Response {
	out := *r
	out.headers = make([]headerEntry, len(r.headers))
	for i, h := range r.headers {
		out.headers[i] = headerEntry{
			Name:   h.Name,
			Values: append([]string(nil), h.Values...),
		}
	}
	return &out
}
