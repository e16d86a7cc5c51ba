package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	"github.com/Masterminds/sprig/v3"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	ctxutil "github.com/repairhub/backend/pkg/context"
	"github.com/repairhub/backend/pkg/logger"
)

const resetEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Password reset</h2>
    <p>Hi {{ .Name | default "there" | title }},</p>
    <p>We received a request to reset the password for your {{ .AppName }} account.</p>
    <p><a href="{{ .ResetLink }}" style="display: inline-block; padding: 12px 30px; background: #2b6cb0; color: #fff; text-decoration: none; border-radius: 4px;">Reset password</a></p>
    <p>Or paste this link into your browser:</p>
    <p style="word-break: break-all; font-size: 12px; color: #666;">{{ .ResetLink }}</p>
    <p><strong>The link expires in {{ .TTLMinutes }} minutes</strong> and can be used once.</p>
    <p>If you did not request a reset, you can ignore this email.</p>
  </div>
</body>
</html>
`

// EmailService delivers transactional mail through Amazon SES. When no
// sender address is configured the service is disabled and sends become
// no-ops, which keeps local development runnable without AWS credentials.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appName    string
	appBaseURL string
	ttlMinutes int
	tmpl       *template.Template
	enabled    bool
}

func NewEmailService(ctx context.Context, region, fromEmail, fromName, appName, appBaseURL string, ttlMinutes int) (*EmailService, error) {
	tmpl, err := template.New("reset").Funcs(sprig.FuncMap()).Parse(resetEmailTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reset email template: %w", err)
	}

	svc := &EmailService{
		fromEmail:  fromEmail,
		fromName:   fromName,
		appName:    appName,
		appBaseURL: appBaseURL,
		ttlMinutes: ttlMinutes,
		tmpl:       tmpl,
	}

	if fromEmail == "" {
		logger.GetLogger().Warn("Email service disabled: SES_FROM_EMAIL not configured")
		return svc, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	svc.client = sesv2.NewFromConfig(cfg)
	svc.enabled = true
	return svc, nil
}

func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendPasswordResetEmail emails the reset link carrying the raw secret.
// The secret reaches exactly this one sink and is never logged.
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, toName, rawSecret string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "SendPasswordResetEmail")

	if !s.enabled {
		logger.InfoWithContext(ctx, "Email service disabled, skipping reset email").
			String("to", toEmail).
			Log()
		return nil
	}

	query := url.Values{}
	query.Set("email", toEmail)
	query.Set("token", rawSecret)
	resetLink := fmt.Sprintf("%s/reset-password?%s", s.appBaseURL, query.Encode())

	var body bytes.Buffer
	err := s.tmpl.Execute(&body, map[string]any{
		"Name":       toName,
		"AppName":    s.appName,
		"ResetLink":  resetLink,
		"TTLMinutes": s.ttlMinutes,
	})
	if err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}

	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	subject := fmt.Sprintf("Reset your %s password", s.appName)
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(body.String()),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	logger.InfoWithContext(ctx, "Reset email sent").
		String("to", toEmail).
		Log()

	return nil
}
