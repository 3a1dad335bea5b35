package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/sirupsen/logrus"
)

// EmailService sends transactional email via Amazon SES. When no sender
// address is configured the service is disabled and every send is a no-op.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	log       *logrus.Logger
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName string, log *logrus.Logger) (*EmailService, error) {
	if fromEmail == "" {
		log.Info("email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, log: log}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.WithFields(logrus.Fields{"from": fromEmail, "region": awsRegion}).Info("email service enabled")

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		log:       log,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail greets a freshly registered parent
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		s.log.WithField("to", toEmail).Debug("skipping welcome email, service disabled")
		return nil
	}

	subject := "Welcome to ChorePoints!"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #43a047; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Welcome to ChorePoints!</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Thank you for creating your ChorePoints account! Turn everyday chores into a game your kids actually want to play.</p>
			<p>Here's what you can do next:</p>
			<ul>
				<li>Add your children's profiles</li>
				<li>Set up daily habits with point rewards</li>
				<li>Hand out one-off tasks</li>
				<li>Let your kids spend their points on gifts</li>
			</ul>
		</div>
		<div class="footer">
			<p>This is an automated email from ChorePoints. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, toName)

	textBody := fmt.Sprintf(`Hi %s,

Thank you for creating your ChorePoints account! Turn everyday chores into a game your kids actually want to play.

Here's what you can do next:
- Add your children's profiles
- Set up daily habits with point rewards
- Hand out one-off tasks
- Let your kids spend their points on gifts

---
This is an automated email from ChorePoints. Please do not reply.
`, toName)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

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
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	s.log.WithFields(logrus.Fields{"to": toEmail, "subject": subject}).Info("email sent")
	return nil
}
