// Package notify tells the site's staff about new contact form inquiries.
package notify

import (
	"context"
	"fmt"
	"net/http"

	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"

	"github.com/golang/glog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Notifier is told about every inquiry after it is stored.
type Notifier interface {
	InquiryReceived(ctx context.Context, inquiry *models.Inquiry) error
}

var (
	_ Notifier = (*SendGrid)(nil)
	_ Notifier = Log{}
)

// Log writes notifications to the application log.
type Log struct{}

func (Log) InquiryReceived(_ context.Context, inquiry *models.Inquiry) error {
	glog.Infof("new inquiry %s from %s <%s>\n", inquiry.ID, inquiry.Name, inquiry.Email)
	return nil
}

var (
	defaultHost = "https://api.sendgrid.com"
	endpoint    = "/v3/mail/send"
)

// SendGrid emails each inquiry to the site's contact address.
type SendGrid struct {
	key        string
	host       string
	from       *sgmail.Email
	to         *sgmail.Email
	subjPrefix string
}

type SendGridOptions struct {
	APIKey    string
	SiteName  string
	FromEmail string
	ToEmail   string
	// Host overrides the SendGrid API host.
	Host string
}

func NewSendGrid(opts SendGridOptions) *SendGrid {
	host := opts.Host
	if host == "" {
		host = defaultHost
	}
	return &SendGrid{
		key:        opts.APIKey,
		host:       host,
		from:       sgmail.NewEmail(opts.SiteName, opts.FromEmail),
		to:         sgmail.NewEmail(opts.SiteName, opts.ToEmail),
		subjPrefix: "[" + opts.SiteName + "] ",
	}
}

func (svc *SendGrid) InquiryReceived(ctx context.Context, inquiry *models.Inquiry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	req := sendgrid.GetRequest(svc.key, endpoint, svc.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(svc.prepare(inquiry))

	res, err := sendgrid.API(req)
	if err != nil {
		return qerrors.External(err, "error sending inquiry notification")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return qerrors.External(nil, "sendgrid returned %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

func (svc *SendGrid) prepare(inquiry *models.Inquiry) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = svc.subjPrefix + "New inquiry from " + inquiry.Name
	p.AddTos(svc.to)

	m := sgmail.NewV3Mail()
	m.SetFrom(svc.from)
	m.SetReplyTo(sgmail.NewEmail(inquiry.Name, inquiry.Email))
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", fmt.Sprintf(
		"From: %s <%s>\n\n%s\n", inquiry.Name, inquiry.Email, inquiry.Message,
	)))
	return m
}

// Send delivers the notification and logs a failure. Inquiries are accepted either way.
func Send(ctx context.Context, n Notifier, inquiry *models.Inquiry) {
	if n == nil {
		return
	}
	if err := n.InquiryReceived(ctx, inquiry); err != nil {
		glog.Warningf("inquiry %s notification failed: %v\n", inquiry.ID, err)
	}
}
