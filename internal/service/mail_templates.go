package service

import (
	"bytes"
	"html/template"
)

var mailTemplates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`
{{define "otp_login"}}<p style="font-size:18px">Your OTP code is <b>{{.Code}}</b>. It is valid for 10 minutes.</p>{{end}}

{{define "welcome"}}<h2>Welcome, <b>{{.FirstName}} {{.LastName}}</b>!</h2>
<p style="font-size:18px">Your login: <code>{{.Login}}</code></p>
<p style="font-size:18px">Your email: <code>{{.Email}}</code></p>
<p style="font-size:18px"><b>Verification code:</b> <code>{{.Code}}</code> (valid for 3 hours)</p>
<p style="font-size:18px">Please use this code to verify your account and complete your registration.</p>{{end}}

{{define "verified"}}<h2>Welcome, <b>{{.FirstName}} {{.LastName}}</b>!</h2>
<p style="font-size:18px">Your account has been <b>successfully verified</b> and activated. You can now log in and start exploring the <b>Phonetics Learning Center</b>.</p>
<p style="font-size:14px;color:#888">If you did not request this registration, please ignore this message.</p>{{end}}

{{define "resend_otp"}}<h2>Hello <b>{{.FirstName}} {{.LastName}}</b>,</h2>
<p style="font-size:18px">Your new OTP code is: <code>{{.Code}}</code></p>
<p style="font-size:18px">This code will expire in 3 hours.</p>{{end}}

{{define "forgot_password"}}<h2>Hello {{.FirstName}},</h2>
<p style="font-size:18px">Your password reset OTP code is: <b>{{.Code}}</b></p>
<p style="font-size:18px">This code expires in 3 hours.</p>{{end}}

{{define "password_updated"}}<h2>Hello, <b>{{.FirstName}} {{.LastName}}</b>!</h2>
<p style="font-size:18px">Your password has been <b>successfully updated</b> for your <b>Phonetics Learning Center</b> account.</p>
<p style="font-size:18px">You can now log in with your new credentials.</p>
<p style="font-size:14px;color:#888">If you didn't request this password reset, please contact support immediately.</p>{{end}}

{{define "contact_reply"}}<h2>{{.FullName}},</h2>
<p style="font-size:16px">{{.Message}}</p>
<br/><p>Best regards,<br/>Phonetics Learning Centre</p>{{end}}

{{define "generated_users"}}<h2 style="font-size:20px">Generated Temporary Users</h2>
<table border="1" cellpadding="10" cellspacing="0" style="border-collapse:collapse;font-size:18px;width:100%">
<thead><tr style="background-color:#f0f0f0"><th>#</th><th>Login</th><th>Email</th><th>Password</th><th>OTP Code</th></tr></thead>
<tbody>{{range $i, $u := .}}<tr><td><b>{{inc $i}}</b></td><td>{{$u.Login}}</td><td>{{$u.Email}}</td><td>{{$u.Password}}</td><td>{{$u.OTPCode}}</td></tr>{{end}}</tbody>
</table>{{end}}
`))

type mailData struct {
	FirstName string
	LastName  string
	Login     string
	Email     string
	Code      string
	FullName  string
	Message   string
}

func renderMail(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
