package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karimbakri/homeport/internal/app"
	"github.com/karimbakri/homeport/internal/listing"
	"github.com/karimbakri/homeport/internal/quickpay"
	"github.com/karimbakri/homeport/internal/session"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Long:  "Start the interactive shell: sign in, browse and compare listings, read notifications, switch roles, and run Quick Pay.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)

			sh := &shell{app: a, out: cmd.OutOrStdout()}
			return sh.run(cmd.InOrStdin())
		},
	}
}

// shell is the interactive command loop.
type shell struct {
	app *app.App
	out io.Writer
}

func (s *shell) run(in io.Reader) error {
	fmt.Fprintln(s.out, "homeport shell. Type 'help' for commands, 'exit' to quit.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(s.out, "%s> ", s.prompt())
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			break
		}

		if err := s.dispatch(fields[0], fields[1:]); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

// prompt shows who is signed in, the active role, and the unread badge.
func (s *shell) prompt() string {
	identity, ok := s.app.Sessions.CurrentIdentity()
	if !ok {
		return "guest"
	}

	p := fmt.Sprintf("%s/%s", identity.Email, identity.ActiveRole)
	if unread := s.app.Notifications.UnreadCount(identity.ActiveRole); unread > 0 {
		p += fmt.Sprintf(" [%d]", unread)
	}
	return p
}

func (s *shell) dispatch(cmd string, args []string) error {
	switch cmd {
	case "help":
		s.printHelp()
		return nil
	case "signin":
		return s.cmdSignIn(args)
	case "signout":
		s.app.SignOut()
		fmt.Fprintln(s.out, "Signed out.")
		return nil
	case "whoami":
		return s.cmdWhoAmI()
	case "switch":
		return s.cmdSwitch(args)
	case "notifications":
		return s.cmdNotifications(args)
	case "listings":
		return s.cmdListings(args)
	case "compare":
		return s.cmdCompare(args)
	case "pay":
		return s.cmdPay(args)
	}
	return fmt.Errorf("unknown command %q, try 'help'", cmd)
}

func (s *shell) printHelp() {
	fmt.Fprint(s.out, `Commands:
  signin <email> <password>       sign in
  signout                         sign out
  whoami                          show the current identity and roles
  switch <role> [remember]        switch the active role
  notifications [markread]        list notifications for the active role
  listings [community]            browse the catalog
  compare add|remove <id>         manage the comparison list (max 4)
  compare list|clear
  pay ...                         Quick Pay, see 'pay help'
  exit
`)
}

func (s *shell) cmdSignIn(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: signin <email> <password>")
	}
	if err := s.app.SignIn(args[0], args[1]); err != nil {
		return err
	}

	identity, _ := s.app.Sessions.CurrentIdentity()
	fmt.Fprintf(s.out, "Welcome %s. Active role: %s\n", identity.DisplayName, identity.ActiveRole)
	return nil
}

func (s *shell) cmdWhoAmI() error {
	identity, ok := s.app.Sessions.CurrentIdentity()
	if !ok {
		fmt.Fprintln(s.out, "Not signed in.")
		return nil
	}
	printIdentity(s.out, identity)
	return nil
}

func (s *shell) cmdSwitch(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: switch <role> [remember]")
	}
	if !session.ValidRole(session.Role(args[0])) {
		return fmt.Errorf("unknown role %q", args[0])
	}
	remember := len(args) > 1 && args[1] == "remember"

	committed, err := s.app.SwitchRole(context.Background(), session.Role(args[0]), remember)
	if err != nil {
		return err
	}
	if !committed {
		fmt.Fprintln(s.out, "No change.")
		return nil
	}
	fmt.Fprintf(s.out, "Now acting as %s.\n", s.app.Sessions.CurrentRole())
	return nil
}

func (s *shell) cmdNotifications(args []string) error {
	role := s.app.Sessions.CurrentRole()
	if role == "" {
		return errors.New("sign in to see notifications")
	}

	if len(args) > 0 && args[0] == "markread" {
		if err := s.app.MarkNotificationsRead(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Marked read.")
		return nil
	}

	s.app.Nav.ToggleNotifications(true)
	printNotifications(s.out, s.app.Notifications.ForRole(role))
	return nil
}

func (s *shell) cmdListings(args []string) error {
	opts := listing.ListOptions{}
	if len(args) > 0 {
		opts.Community = args[0]
	}

	listings, err := s.app.Listings.List(opts)
	if err != nil {
		return err
	}
	return printListingTable(s.out, listings, s.app.Nav.ComparisonList())
}

func (s *shell) cmdCompare(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: compare add|remove|list|clear [id]")
	}

	switch args[0] {
	case "add":
		if len(args) != 2 {
			return errors.New("usage: compare add <id>")
		}
		if _, err := s.app.Listings.GetByID(args[1]); err != nil {
			return err
		}
		res := s.app.Nav.AddToComparison(args[1])
		if !res.Added {
			fmt.Fprintf(s.out, "Not added: %s\n", res.Reason)
			return nil
		}
		fmt.Fprintf(s.out, "Comparing %d of 4.\n", len(s.app.Nav.ComparisonList()))
	case "remove":
		if len(args) != 2 {
			return errors.New("usage: compare remove <id>")
		}
		s.app.Nav.RemoveFromComparison(args[1])
		fmt.Fprintf(s.out, "Comparing %d of 4.\n", len(s.app.Nav.ComparisonList()))
	case "clear":
		s.app.Nav.ClearComparison()
		fmt.Fprintln(s.out, "Comparison cleared.")
	case "list":
		ids := s.app.Nav.ComparisonList()
		if len(ids) == 0 {
			fmt.Fprintln(s.out, "Comparison is empty.")
			return nil
		}
		var listings []*listing.Listing
		for _, id := range ids {
			l, err := s.app.Listings.GetByID(id)
			if err != nil {
				return err
			}
			listings = append(listings, l)
		}
		return printListingTable(s.out, listings, ids)
	default:
		return fmt.Errorf("unknown compare action %q", args[0])
	}
	return nil
}

func (s *shell) cmdPay(args []string) error {
	if len(args) == 0 || args[0] == "help" {
		fmt.Fprint(s.out, `Quick Pay:
  pay start                       begin (homeowners skip the lookup)
  pay search <account> <surname>  find a payable account
  pay confirm                     confirm the amount due
  pay methods                     list payment methods
  pay select <method-id>          choose a method, sends the code
  pay addcard <number> <holder> <MM/YY> <cvv>
  pay otp <code>                  verify and complete
  pay back                        previous step
  pay exit                        abandon
`)
		return nil
	}

	if args[0] == "start" {
		w, err := s.app.StartQuickPay()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Quick Pay started at step %q.\n", w.Step())
		if w.Step() == quickpay.StepChooseMethod {
			printMethods(s.out, w.Methods())
		}
		return nil
	}

	w := s.app.Wizard()
	if w == nil {
		return errors.New("no payment in progress, run 'pay start'")
	}

	switch args[0] {
	case "search":
		if len(args) != 3 {
			return errors.New("usage: pay search <account> <surname>")
		}
		if err := w.Search(args[1], args[2]); err != nil {
			return err
		}
		printAccount(s.out, w.Account())
	case "confirm":
		if err := w.ConfirmPayment(context.Background()); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Confirmed. Choose a payment method.")
		printMethods(s.out, w.Methods())
	case "methods":
		printMethods(s.out, w.Methods())
	case "select":
		if len(args) != 2 {
			return errors.New("usage: pay select <method-id>")
		}
		if err := w.SelectMethod(args[1]); err != nil {
			return err
		}
		// SMS delivery is mocked in this build.
		fmt.Fprintf(s.out, "Verification code sent: %s\n", w.IssuedOTP())
	case "addcard":
		if len(args) != 5 {
			return errors.New("usage: pay addcard <number> <holder> <MM/YY> <cvv>")
		}
		m, err := w.AddCard(quickpay.CardInput{
			Number: args[1], Holder: args[2], Expiry: args[3], CVV: args[4],
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Added %s card ending %s (%s).\n", m.Brand, m.Last4, m.ID)
	case "otp":
		if len(args) != 2 {
			return errors.New("usage: pay otp <code>")
		}
		if err := w.VerifyOTP(args[1]); err != nil {
			return err
		}
		snap := w.Snapshot()
		fmt.Fprintf(s.out, "Payment complete. Receipt %s for account %s.\n",
			snap.TransactionID, snap.AccountNumber)
	case "back":
		if exited := w.Back(); exited {
			fmt.Fprintln(s.out, "Quick Pay closed.")
			return nil
		}
		fmt.Fprintf(s.out, "Step: %s\n", w.Step())
	case "exit":
		w.Exit()
		fmt.Fprintln(s.out, "Quick Pay closed.")
	default:
		return fmt.Errorf("unknown pay action %q, try 'pay help'", args[0])
	}
	return nil
}
