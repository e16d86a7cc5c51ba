package handler

import (
	"html/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/gin-gonic/gin"
)

// The reset flow is the one browser-facing corner of the API, so the two
// pages it needs live here as inline templates instead of a frontend.

const resetFormPage = `<!DOCTYPE html>
<html>
<head><title>Reset password</title></head>
<body style="font-family: Arial, sans-serif; max-width: 480px; margin: 40px auto;">
  <h2>Choose a new password</h2>
  <form method="POST" action="/reset-password">
    <input type="hidden" name="email" value="{{ .Email }}">
    <input type="hidden" name="token" value="{{ .Token }}">
    <p>
      <label>New password<br>
      <input type="password" name="password" minlength="8" required style="width: 100%;"></label>
    </p>
    <p>
      <label>Repeat new password<br>
      <input type="password" name="password_confirmation" minlength="8" required style="width: 100%;"></label>
    </p>
    <p><button type="submit" style="padding: 10px 24px;">Set password</button></p>
  </form>
</body>
</html>
`

const resetResultPage = `<!DOCTYPE html>
<html>
<head><title>{{ if .Success }}Password changed{{ else }}Reset failed{{ end }}</title></head>
<body style="font-family: Arial, sans-serif; max-width: 480px; margin: 40px auto;">
  {{ if .Success }}
  <h2 style="color: #276749;">Password changed</h2>
  {{ else }}
  <h2 style="color: #9b2c2c;">Something went wrong</h2>
  {{ end }}
  <p>{{ .Message | trim }}</p>
</body>
</html>
`

var (
	resetFormTmpl   = template.Must(template.New("reset_form").Funcs(sprig.FuncMap()).Parse(resetFormPage))
	resetResultTmpl = template.Must(template.New("reset_result").Funcs(sprig.FuncMap()).Parse(resetResultPage))
)

func renderResetForm(c *gin.Context, email, token string) {
	c.Status(200)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = resetFormTmpl.Execute(c.Writer, map[string]any{
		"Email": email,
		"Token": token,
	})
}

func renderResetResult(c *gin.Context, status int, success bool, message string) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = resetResultTmpl.Execute(c.Writer, map[string]any{
		"Success": success,
		"Message": message,
	})
}
