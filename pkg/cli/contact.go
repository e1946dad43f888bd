package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thryce/site/pkg/contact"
)

func newContactCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Contact form relay",
	}
	cmd.AddCommand(newContactSendCmd(opts))
	return cmd
}

func newContactSendCmd(opts *rootOptions) *cobra.Command {
	var form contact.Form

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Submit the contact form through the email relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := contact.NewClient(opts.cfg.Contact, contact.WithLogger(opts.logger))
			sub, err := client.Send(cmd.Context(), form)
			if err != nil {
				var re *contact.RelayError
				if errors.As(err, &re) && re.Hint() != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), "hint:", re.Hint())
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "message sent (%s)\n", sub.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "sender name")
	f.StringVar(&form.Email, "email", "", "sender email, used as reply-to")
	f.StringVar(&form.Subject, "subject", "", "message subject")
	f.StringVar(&form.Message, "message", "", "message body")
	return cmd
}
