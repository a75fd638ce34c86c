package notifyx

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/pesantren-notify/asyncx"
	"github.com/Abraxas-365/pesantren-notify/logx"
	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/Abraxas-365/pesantren-notify/templatex"
)

// Kind classifies a notification for logs and callers' bookkeeping
type Kind string

const (
	KindPayment      Kind = "payment"
	KindAttendance   Kind = "attendance"
	KindGrade        Kind = "grade"
	KindAnnouncement Kind = "announcement"
	KindDonation     Kind = "donation"
	KindPPDB         Kind = "ppdb"
	KindGeneral      Kind = "general"
)

const defaultConcurrency = 4

// Options configures a Notifier
type Options struct {
	Signature   string // Appended in italics to text fallbacks
	Language    string // Template language, defaults to templatex.DefaultLanguage
	Concurrency int    // Parallel sends during Broadcast
}

// Notifier sends a notification as a template when possible and as plain
// text otherwise. Each path is attempted at most once.
type Notifier struct {
	sender msgx.Sender
	opts   Options
}

func New(sender msgx.Sender, opts Options) *Notifier {
	if opts.Language == "" {
		opts.Language = templatex.DefaultLanguage
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &Notifier{sender: sender, opts: opts}
}

// Notify sends templateName with [title, message] when a template is named,
// falling back to a formatted text message. A template failure is not
// reported when the fallback succeeds.
func (n *Notifier) Notify(ctx context.Context, phone string, kind Kind, title, message, templateName string) msgx.DeliveryResult {
	if templateName != "" {
		res := n.sender.Send(ctx, msgx.NewTemplateMessage(phone, templateName, n.opts.Language, []string{title, message}))
		if res.Success {
			return res
		}
		logx.Warn("Template %s for %s notification failed (%s), falling back to text", templateName, kind, res.Error)
	}

	return n.sendText(ctx, phone, kind, n.FormatText(title, message))
}

// NotifyTemplate sends a typed template, falling back to its rendered body
func (n *Notifier) NotifyTemplate(ctx context.Context, phone string, kind Kind, params templatex.Params) msgx.DeliveryResult {
	res := n.sender.Send(ctx, msgx.NewTemplateMessage(phone, params.TemplateName(), n.opts.Language, params.Values()))
	if res.Success {
		return res
	}
	logx.Warn("Template %s for %s notification failed (%s), falling back to text", params.TemplateName(), kind, res.Error)

	return n.sendText(ctx, phone, kind, n.sign(templatex.Fallback(params)))
}

// FormatText renders the plain-text form of a notification
func (n *Notifier) FormatText(title, message string) string {
	return n.sign(fmt.Sprintf("*%s*\n\n%s", title, message))
}

func (n *Notifier) sign(text string) string {
	if n.opts.Signature == "" {
		return text
	}
	return fmt.Sprintf("%s\n\n_%s_", text, n.opts.Signature)
}

func (n *Notifier) sendText(ctx context.Context, phone string, kind Kind, text string) msgx.DeliveryResult {
	res := n.sender.Send(ctx, msgx.NewTextMessage(phone, text))
	if !res.Success {
		logx.Error("%s notification to %s failed: %s", kind, phone, res.Error)
	}
	return res
}

// Recipient is one line of a broadcast report
type Recipient struct {
	Phone  string              `json:"phone"`
	Result msgx.DeliveryResult `json:"result"`
}

// Broadcast notifies every phone with bounded concurrency and reports the
// result per recipient, in input order.
func (n *Notifier) Broadcast(ctx context.Context, phones []string, kind Kind, title, message, templateName string) []Recipient {
	report := asyncx.MapLimit(ctx, phones, n.opts.Concurrency, func(ctx context.Context, phone string) Recipient {
		return Recipient{Phone: phone, Result: n.Notify(ctx, phone, kind, title, message, templateName)}
	})

	failed := 0
	for _, r := range report {
		if !r.Result.Success {
			failed++
		}
	}
	logx.Info("Broadcast %s: %d sent, %d failed", kind, len(report)-failed, failed)
	return report
}
