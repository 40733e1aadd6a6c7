package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"

	"github.com/nimish0503/Hush-Hush-Recruiter/internal/models"
	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/config"
	"github.com/nimish0503/Hush-Hush-Recruiter/pkg/logger"
)

const shortlistTemplate = `
<p>Hi {{.CandidateName}},</p>
<p>Good news! You have been shortlisted for the technical round of our
<strong>{{.JobTitle}}</strong> position.</p>
<p>Please complete the questionnaire at
<a href="{{.QuestionnaireLink}}">{{.QuestionnaireLink}}</a>
before <strong>{{.Deadline}}</strong>.</p>
<p>Best of luck,<br>The Recruiting Team</p>
`

const rejectionTemplate = `
<p>Hi {{.CandidateName}},</p>
<p>Thank you for taking the time to go through our technical round. After
careful consideration we have decided not to move forward with your
application at this time.</p>
<p>We wish you all the best in your search.</p>
<p>The Recruiting Team</p>
`

const interviewTemplate = `
<p>Hi {{.CandidateName}},</p>
<p>Congratulations! We would like to invite you to an HR interview.</p>
<p>Available dates:</p>
<ul>
{{range .InterviewDates}}<li>{{.}}</li>
{{end}}</ul>
<p>Please reply to <a href="mailto:{{.HREmail}}">{{.HREmail}}</a> with your
preferred date.</p>
<p>The Recruiting Team</p>
`

// EmailService sends recruiting emails over SMTP with rendered HTML bodies
type EmailService struct {
	dialer           *gomail.Dialer
	from             string
	hrEmail          string
	questionnaireURL string
	templates        *template.Template
}

// NewEmailService creates an EmailService from SMTP configuration
func NewEmailService(cfg config.SMTPConfig) (*EmailService, error) {
	templates := template.New("emails")
	for name, body := range map[string]string{
		"shortlist": shortlistTemplate,
		"rejection": rejectionTemplate,
		"interview": interviewTemplate,
	} {
		if _, err := templates.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
	}

	return &EmailService{
		dialer:           gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:             cfg.From,
		hrEmail:          cfg.HREmail,
		questionnaireURL: cfg.QuestionnaireURL,
		templates:        templates,
	}, nil
}

// Send sends a single HTML email
func (s *EmailService) Send(recipient, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		logger.WithError(err).WithField("recipient", recipient).Error("Failed to send email")
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}

	logger.WithFields(logrus.Fields{"recipient": recipient, "subject": subject}).Info("Email sent")
	return nil
}

// SendShortlistEmail tells a candidate they made the technical round
func (s *EmailService) SendShortlistEmail(candidate *models.Candidate) error {
	body, err := s.render("shortlist", map[string]interface{}{
		"CandidateName":     candidate.Username,
		"JobTitle":          candidate.JobRole,
		"QuestionnaireLink": s.questionnaireURL,
		"Deadline":          time.Now().AddDate(0, 0, 2).Format("January 2, 2006"),
	})
	if err != nil {
		return err
	}
	return s.Send(candidate.Email, "You've been shortlisted for the Technical Round!", body)
}

// SendRejectionEmail tells a candidate they were not selected
func (s *EmailService) SendRejectionEmail(candidate *models.Candidate) error {
	body, err := s.render("rejection", map[string]interface{}{
		"CandidateName": candidate.Username,
	})
	if err != nil {
		return err
	}
	return s.Send(candidate.Email, "Update on Your Application", body)
}

// SendInterviewInvitation invites a candidate to the HR interview and
// notifies HR with the same dates
func (s *EmailService) SendInterviewInvitation(candidate *models.Candidate, dates []string) error {
	body, err := s.render("interview", map[string]interface{}{
		"CandidateName":  candidate.Username,
		"InterviewDates": dates,
		"HREmail":        s.hrEmail,
	})
	if err != nil {
		return err
	}

	if err := s.Send(candidate.Email, "Invitation to HR Interview - Choose Your Date", body); err != nil {
		return err
	}

	if s.hrEmail != "" {
		return s.Send(s.hrEmail, "Schedule HR Interview - Candidate: "+candidate.Username, body)
	}
	return nil
}

// render executes a named template into an HTML string
func (s *EmailService) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}
