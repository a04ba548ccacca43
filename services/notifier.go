package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"dropoff-intake-api/models"
)

// MailSender is satisfied by config.Mailer.
type MailSender interface {
	SendMail(to []string, subject, html string) error
}

// SubmissionNotifier e-mails shop staff when a new drop-off arrives.
type SubmissionNotifier struct {
	mailer     MailSender
	recipients []string
}

func NewSubmissionNotifier(mailer MailSender, recipients []string) *SubmissionNotifier {
	return &SubmissionNotifier{mailer: mailer, recipients: recipients}
}

// SubmissionReceived sends one message describing the stored submission.
func (n *SubmissionNotifier) SubmissionReceived(id int64, in models.SubmissionInput) error {
	if n == nil || n.mailer == nil || len(n.recipients) == 0 {
		return nil
	}
	subject, body, err := renderSubmissionEmail(id, in)
	if err != nil {
		return err
	}
	return n.mailer.SendMail(n.recipients, subject, body)
}

var submissionEmailTmpl = template.Must(template.New("submission").Parse(`<h2>New drop-off #{{.ID}}</h2>
<table>
{{- range .Rows}}
<tr><th align="left">{{.Label}}</th><td>{{.Value}}</td></tr>
{{- end}}
</table>
`))

type emailRow struct {
	Label string
	Value string
}

func renderSubmissionEmail(id int64, in models.SubmissionInput) (string, string, error) {
	data := struct {
		ID   int64
		Rows []emailRow
	}{
		ID: id,
		Rows: []emailRow{
			{"Customer", textOrDash(in.ShopName)},
			{"Phone", textOrDash(in.PhoneNumber)},
			{"Drop-off type", textOrDash(in.DropOffType)},
			{"Vehicle", vehicleLabel(in)},
			{"Issue", textOrDash(in.VehicleIssueDescription)},
			{"Modules", intOrDash(in.ModuleCount)},
			{"Single stage", intOrDash(in.SingleStageCount)},
			{"Dual stage", intOrDash(in.DualStageCount)},
			{"Three stage", intOrDash(in.ThreeStageCount)},
			{"Buckles", intOrDash(in.BuckleCount)},
		},
	}

	var buf bytes.Buffer
	if err := submissionEmailTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render submission email: %w", err)
	}

	subject := fmt.Sprintf("New drop-off #%d", id)
	if in.ShopName != nil {
		subject += " from " + *in.ShopName
	}
	return subject, buf.String(), nil
}

func vehicleLabel(in models.SubmissionInput) string {
	label := ""
	if in.VehicleYear != nil {
		label = strconv.Itoa(*in.VehicleYear)
	}
	for _, part := range []*string{in.VehicleMake, in.VehicleModel} {
		if part == nil {
			continue
		}
		if label != "" {
			label += " "
		}
		label += *part
	}
	if label == "" {
		return "-"
	}
	return label
}

func textOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func intOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
