package dispatch

import (
	"fmt"
	"html/template"
	"strings"

	"contract-service/internal/models"
)

var emailBody = template.Must(template.New("email").Parse(`<html>
<body>
  <h2>{{.Heading}}</h2>
  <p>{{.Message}}</p>
  {{if .ContractTitle}}<p><b>Contract:</b> {{.ContractTitle}}</p>{{end}}
  {{if .Detail}}<p>{{.Detail}}</p>{{end}}
  <p>This is an automated message from the contract management system.</p>
</body>
</html>`))

type emailData struct {
	Heading       string
	Message       string
	ContractTitle string
	Detail        string
}

// RenderEmail builds the subject and HTML body for a notification from its
// event kind and metadata.
func RenderEmail(n models.Notification) (subject, body string, err error) {
	data := emailData{
		Message:       n.Message,
		ContractTitle: n.Meta.ContractTitle,
	}

	switch n.Kind {
	case models.EventExpiringSoon:
		subject = fmt.Sprintf("Contract expiring in %d day(s)", n.Meta.DaysLeft)
		data.Heading = "Contract Expiring Soon"
		data.Detail = fmt.Sprintf("End date: %s (%d day(s) remaining)", n.Meta.EndDate, n.Meta.DaysLeft)
	case models.EventExpired:
		subject = "Contract expired"
		data.Heading = "Contract Expired"
		data.Detail = fmt.Sprintf("End date: %s", n.Meta.EndDate)
	case models.EventStatusChange:
		subject = "Contract status changed"
		data.Heading = "Contract Status Change"
		data.Detail = fmt.Sprintf("Status changed from %s to %s", n.Meta.OldStatus, n.Meta.NewStatus)
	case models.EventRenewalReminder:
		subject = "Contract renewal reminder"
		data.Heading = "Renewal Reminder"
		data.Detail = fmt.Sprintf("End date: %s", n.Meta.EndDate)
	case models.EventDocumentUpdate:
		subject = "Contract document updated"
		data.Heading = "Document Update"
		data.Detail = fmt.Sprintf("Document: %s", n.Meta.DocumentName)
	default:
		return "", "", fmt.Errorf("no email template for event kind %q", n.Kind)
	}

	var sb strings.Builder
	if err := emailBody.Execute(&sb, data); err != nil {
		return "", "", err
	}
	return subject, sb.String(), nil
}
