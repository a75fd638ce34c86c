package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Abraxas-365/pesantren-notify/msgx"
	"github.com/Abraxas-365/pesantren-notify/notifyx"
	"github.com/Abraxas-365/pesantren-notify/templatex"
)

func newSendCmd() *cobra.Command {
	var (
		to, text, template, language string
		params                       []string
		values                       map[string]string
		image, document              string
		caption, filename            string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one message (text, template, image or document)",
		Example: `  pesantren-notify send --to 081234567890 --text "Assalamu'alaikum"
  pesantren-notify send --to 081234567890 --template payment_reminder --value parentName=Budi --value amount="Rp 750.000"
  pesantren-notify send --to 081234567890 --document https://cdn.example.sch.id/rapor.pdf --filename rapor.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var msg msgx.Message
			switch {
			case text != "":
				msg = msgx.NewTextMessage(to, text)
			case template != "":
				if len(params) == 0 && len(values) > 0 {
					params = templatex.FormatParameters(template, values)
				}
				msg = msgx.NewTemplateMessage(to, template, language, params)
			case image != "":
				msg = msgx.NewMediaMessage(to, msgx.MessageTypeImage, image, caption, "")
			case document != "":
				msg = msgx.NewMediaMessage(to, msgx.MessageTypeDocument, document, caption, filename)
			default:
				return errors.New("one of --text, --template, --image or --document is required")
			}

			a := newApp(cfg)
			return report(cmd.OutOrStdout(), a.client.Send(cmd.Context(), msg))
		},
	}

	f := cmd.Flags()
	f.StringVar(&to, "to", "", "recipient phone number")
	f.StringVar(&text, "text", "", "text body")
	f.StringVar(&template, "template", "", "template name")
	f.StringVar(&language, "lang", templatex.DefaultLanguage, "template language")
	f.StringArrayVar(&params, "param", nil, "positional template parameter (repeatable)")
	f.StringToStringVar(&values, "value", nil, "named template parameter name=value (repeatable)")
	f.StringVar(&image, "image", "", "image URL")
	f.StringVar(&document, "document", "", "document URL")
	f.StringVar(&caption, "caption", "", "media caption")
	f.StringVar(&filename, "filename", "", "document file name")
	_ = cmd.MarkFlagRequired("to")
	cmd.MarkFlagsMutuallyExclusive("text", "template", "image", "document")
	return cmd
}

func newNotifyCmd() *cobra.Command {
	var to, kind, title, message, template string

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send a notification, template first with text fallback",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cfg)
			res := a.notifier.Notify(cmd.Context(), to, notifyx.Kind(kind), title, message, template)
			return report(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&to, "to", "", "recipient phone number")
	f.StringVar(&kind, "kind", string(notifyx.KindGeneral), "notification kind")
	f.StringVar(&title, "title", "", "title")
	f.StringVar(&message, "message", "", "message body")
	f.StringVar(&template, "template", "", "template to try first")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func newVerifyNumberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-number PHONE",
		Short: "Normalize a phone number and show its region and line type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newApp(cfg).client.ValidateNumber(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), v)
		},
	}
}
