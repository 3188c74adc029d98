package handlers

import (
	"bytes"
	"log"
	"os"
	"strconv"
	"strings"
	"text/template"

	"gopkg.in/gomail.v2"

	"p9e.in/loantrack/models"
)

// Mailer sends the admin notification emails. Delivery is fire-and-forget:
// failures are logged and never fail the request that triggered them.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	admins   []string
}

// NewMailerFromEnv reads the SMTP settings. With no SMTP_HOST the mailer
// is disabled and every notify call is a logged no-op.
func NewMailerFromEnv() *Mailer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	var admins []string
	for _, addr := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			admins = append(admins, addr)
		}
	}

	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASS"),
		from:     os.Getenv("SMTP_FROM"),
		admins:   admins,
	}
}

var applicationSubmittedTmpl = template.Must(template.New("applicationSubmitted").Parse(
	`A new loan application has been submitted.

Name: {{.Name}}
Mobile: {{.Mobile}}
Product: {{.Product}}
Amount: {{.Amount}}
Bank: {{.Bank}}
Sales: {{.Sales}}
Ref: {{.Ref}}
`))

var visitSubmittedTmpl = template.Must(template.New("visitSubmitted").Parse(
	`A new builder site visit has been recorded.

Builder: {{.BuilderName}}
Project: {{.ProjectName}}
Location: {{.Location}}
Date of Visit: {{.DateOfVisit.Indian}}
Manager: {{.SaiFakiraManager}}
`))

var visitApprovedTmpl = template.Must(template.New("visitApproved").Parse(
	`A builder site visit has received final approval.

Builder: {{.BuilderName}}
Project: {{.ProjectName}}
Location: {{.Location}}
Approved By: {{.Approval.Level2.By}}
`))

func (m *Mailer) send(subject string, tmpl *template.Template, data interface{}) {
	if m.host == "" || len(m.admins) == 0 {
		log.Printf("mail disabled, skipping %q", subject)
		return
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		log.Printf("failed to render mail %q: %v", subject, err)
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.admins...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body.String())

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Printf("failed to send mail %q: %v", subject, err)
		return
	}
	log.Printf("mail sent: %q to %d recipients", subject, len(m.admins))
}

// NotifyApplicationSubmitted emails the admins about a new application.
func (m *Mailer) NotifyApplicationSubmitted(app *models.Application) {
	go m.send("New Loan Application: "+app.Name, applicationSubmittedTmpl, app)
}

// NotifyVisitSubmitted emails the admins about a new builder visit.
func (m *Mailer) NotifyVisitSubmitted(visit *models.BuilderVisit) {
	go m.send("New Builder Visit: "+visit.ProjectName, visitSubmittedTmpl, visit)
}

// NotifyVisitApproved emails the admins when level 2 signs off.
func (m *Mailer) NotifyVisitApproved(visit *models.BuilderVisit) {
	go m.send("Builder Visit Approved: "+visit.ProjectName, visitApprovedTmpl, visit)
}
