package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/karimbakri/homeport/internal/listing"
	"github.com/karimbakri/homeport/internal/notification"
	"github.com/karimbakri/homeport/internal/quickpay"
	"github.com/karimbakri/homeport/internal/session"
)

// printListingTable writes the catalog as an aligned table. Listings on
// the comparison list are marked with an asterisk.
func printListingTable(out io.Writer, listings []*listing.Listing, comparing []string) error {
	if len(listings) == 0 {
		fmt.Fprintln(out, "No listings found.")
		return nil
	}

	marked := make(map[string]bool, len(comparing))
	for _, id := range comparing {
		marked[id] = true
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOMMUNITY\tPRICE\tBEDS\tBATHS\tSQFT")
	for _, l := range listings {
		id := l.ID
		if marked[id] {
			id += "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\tAED %s\t%g\t%g\t%d\n",
			id, l.Title, l.Community, formatPrice(l.Price), l.Bedrooms, l.Bathrooms, l.SqFt)
	}
	return w.Flush()
}

// formatPrice adds thousands separators to a price.
func formatPrice(price int64) string {
	s := strconv.FormatInt(price, 10)
	if len(s) <= 3 {
		return s
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}

// printNotifications writes the inbox, unread first-class.
func printNotifications(out io.Writer, items []notification.Notification) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No notifications.")
		return
	}

	for _, n := range items {
		badge := " "
		if !n.Read {
			badge = "*"
		}
		fmt.Fprintf(out, "%s [%s] %s: %s\n", badge, n.Type, n.Title, n.Message)
	}
}

// printIdentity writes the signed-in identity and its role set.
func printIdentity(out io.Writer, id session.Identity) {
	fmt.Fprintf(out, "%s <%s>\n", id.DisplayName, id.Email)
	for _, r := range id.Roles {
		marker := "  "
		if r == id.ActiveRole {
			marker = "* "
		}
		fmt.Fprintf(out, "  %s%s\n", marker, r)
	}
	if id.RememberedRole != "" {
		fmt.Fprintf(out, "  remembered: %s\n", id.RememberedRole)
	}
}

// printAccount writes the matched payable account.
func printAccount(out io.Writer, a *quickpay.Account) {
	if a == nil {
		return
	}
	fmt.Fprintf(out, "Account %s (%s)\n", a.AccountNumber, a.HolderName)
	fmt.Fprintf(out, "  Amount due: AED %s by %s\n", a.Balance.StringFixed(2), a.DueDate)
}

// printMethods writes the stored payment methods.
func printMethods(out io.Writer, methods []quickpay.Method) {
	if len(methods) == 0 {
		fmt.Fprintln(out, "No stored payment methods. Add one with 'pay addcard'.")
		return
	}
	for _, m := range methods {
		fmt.Fprintf(out, "  %s: %s •••• %s (%s, exp %s)\n", m.ID, m.Brand, m.Last4, m.Holder, m.Expiry)
	}
}
