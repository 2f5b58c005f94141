// Package view holds the page models the HTML response variant carries.
package view

import (
	"bytes"
	"html/template"
	"io"
)

var layoutTmpl = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{if .Title}}{{.Title}} - {{end}}WebDemo</title>
<link rel="stylesheet" href="/public/app.css">
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Layout is the shared page chrome. Body is already-escaped inner HTML
// produced by one of the page constructors below.
type Layout struct {
	Title string
	Body  template.HTML
}

func (l *Layout) Render(w io.Writer) error {
	return layoutTmpl.Execute(w, l)
}

var (
	helloTmpl = template.Must(template.New("hello").Parse(
		`<h1>Hello, readers!</h1>`))

	loginTmpl = template.Must(template.New("login").Parse(`<form method="post" action="/login">
<p>
<label>E-mail</label>
<input type="text" name="username">
</p>
<p>
<label>Password</label>
<input type="password" name="password">
</p>
<button type="submit">Log in</button>
</form>`))

	secretTmpl = template.Must(template.New("secret").Parse(`<h1>Hello there, {{.Email}}</h1>
<p>You&#39;re logged in.</p>
<p><a href="/logout">Log out</a></p>`))
)

func HelloPage() *Layout {
	return &Layout{Title: "Hello, world!", Body: render(helloTmpl, nil)}
}

func LoginPage() *Layout {
	return &Layout{Title: "Log in", Body: render(loginTmpl, nil)}
}

func SecretPage(email string) *Layout {
	return &Layout{
		Title: "Welcome, " + email,
		Body:  render(secretTmpl, struct{ Email string }{Email: email}),
	}
}

func render(tmpl *template.Template, data any) template.HTML {
	var buf bytes.Buffer
	// Page templates are compile-time constants; execution cannot fail on
	// well-formed data.
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(err)
	}
	return template.HTML(buf.String())
}
