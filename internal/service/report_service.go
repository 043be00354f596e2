package service

import (
	"bytes"
	"html/template"
	"learning_center_backend/internal/model"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

// GeneratedAccount is one row of the temporary-users report. Password is the
// plain text password and exists only for the duration of the request.
type GeneratedAccount struct {
	Login    string
	Email    string
	Password string
	OTPCode  string
}

// ReportService renders the PDF and HTML documents sent to admins.
type ReportService struct {
	// LoginURL is encoded in the QR code of each generated account. When
	// empty the QR code carries the bare login.
	LoginURL string
}

func NewReportService(loginURL string) *ReportService {
	return &ReportService{LoginURL: loginURL}
}

func (s *ReportService) qrContent(acc GeneratedAccount) string {
	if s.LoginURL == "" {
		return acc.Login
	}
	return s.LoginURL + "?login=" + acc.Login
}

// GeneratedAccountsPDF renders a table of accounts with a QR code per row.
func (s *ReportService) GeneratedAccountsPDF(accounts []GeneratedAccount) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Generated Temporary Users", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Generated Temporary Users", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{10, 40, 65, 25, 25, 25}
	headers := []string{"#", "Login", "Email", "Password", "OTP Code", "QR"}
	const rowHeight = 24.0

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, acc := range accounts {
		if pdf.GetY()+rowHeight > 280 {
			pdf.AddPage()
		}
		png, err := qrcode.Encode(s.qrContent(acc), qrcode.Medium, 256)
		if err != nil {
			return nil, errors.Wrap(err, "encode qr code")
		}
		name := "qr-" + strconv.Itoa(i)
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))

		cells := []string{strconv.Itoa(i + 1), acc.Login, acc.Email, acc.Password, acc.OTPCode}
		for j, text := range cells {
			pdf.CellFormat(widths[j], rowHeight, text, "1", 0, "L", false, 0, "")
		}
		x, y := pdf.GetX(), pdf.GetY()
		pdf.CellFormat(widths[5], rowHeight, "", "1", 0, "C", false, 0, "")
		pdf.ImageOptions(name, x+2, y+2, rowHeight-4, rowHeight-4, false, opts, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render accounts pdf")
	}
	return buf.Bytes(), nil
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// StatsPDF renders a stats log page as an A4 landscape table.
func (s *ReportService) StatsPDF(logs []model.StatsLog) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Stats Log", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Request Stats Log", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	widths := []float64{10, 38, 30, 16, 70, 35, 22, 28, 28}
	headers := []string{"#", "Date", "IP", "Method", "URL", "Login", "Device", "Browser", "OS"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(242, 242, 242)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for i, l := range logs {
		cells := []string{
			strconv.Itoa(i + 1),
			l.CreatedAt.Format("2006-01-02 15:04:05"),
			dashIfEmpty(l.IP),
			l.Method,
			truncate(l.URL, 48),
			dashIfEmpty(l.Login),
			l.DeviceType,
			l.Browser,
			l.OS,
		}
		for j, text := range cells {
			pdf.CellFormat(widths[j], 6, tr(text), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render stats pdf")
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

var statsHTML = template.Must(template.New("stats").Funcs(template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"dash": dashIfEmpty,
}).Parse(`<html>
<head>
<title>Stats Log</title>
<style>
body { font-family: sans-serif; font-size: 12px; padding: 20px; }
table { width: 100%; border-collapse: collapse; margin-top: 20px; }
th, td { border: 1px solid #999; padding: 6px; text-align: left; }
th { background-color: #f2f2f2; }
</style>
</head>
<body>
<h2>Request Stats Log</h2>
<table>
<thead><tr><th>#</th><th>Date</th><th>IP</th><th>Method</th><th>URL</th><th>Login</th><th>Device</th><th>Browser</th><th>OS</th></tr></thead>
<tbody>
{{range $i, $l := .}}<tr><td>{{inc $i}}</td><td>{{$l.CreatedAt.Format "2006-01-02 15:04:05"}}</td><td>{{dash $l.IP}}</td><td>{{$l.Method}}</td><td>{{$l.URL}}</td><td>{{dash $l.Login}}</td><td>{{$l.DeviceType}}</td><td>{{$l.Browser}}</td><td>{{$l.OS}}</td></tr>
{{end}}</tbody>
</table>
</body>
</html>`))

// StatsHTML renders the same table as StatsPDF as a standalone HTML page.
func (s *ReportService) StatsHTML(logs []model.StatsLog) ([]byte, error) {
	var buf bytes.Buffer
	if err := statsHTML.Execute(&buf, logs); err != nil {
		return nil, errors.Wrap(err, "render stats html")
	}
	return buf.Bytes(), nil
}
