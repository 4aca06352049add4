package commands

import (
	"fmt"
	"io"
	"strings"

	"autistnet/internal/domain"
	"autistnet/internal/feed"
)

const timeLayout = "2006-01-02 15:04"

func authorName(st feed.State, id domain.UserID) string {
	if a, ok := st.Account(id); ok {
		return a.Name
	}
	return id.String()
}

func printPost(w io.Writer, st feed.State, p domain.Post) {
	fmt.Fprintf(w, "[%s] %s  %s  %s\n", p.ID, authorName(st, p.AuthorID), p.CreatedAt.Format(timeLayout), p.KindName())
	fmt.Fprintf(w, "  %s\n", p.Body)
	if p.ImageRef != "" {
		fmt.Fprintf(w, "  image: %s\n", abbreviate(p.ImageRef, 48))
	}
	if c, ok := p.Complaint(); ok {
		fmt.Fprintf(w, "  agency: %s  location: %s  status: %s\n", c.Details.Agency, c.Details.Location, c.Status())
		if r := c.Response; r != nil {
			fmt.Fprintf(w, "  official response from %s (%s): %s\n", r.ResponderName, r.At.Format(timeLayout), r.Text)
		}
	}
	fmt.Fprintf(w, "  likes: %d  comments: %d\n", p.Likes, p.Comments)
}

func printAccount(w io.Writer, a domain.Account) {
	badge := ""
	if a.Verified {
		badge = " (verified)"
	}
	fmt.Fprintf(w, "%s  %s%s  role: %s\n", a.ID, a.Name, badge, a.Role)
	fmt.Fprintf(w, "  coins: %d  followers: %d  following: %d\n", a.Coins, a.Followers, a.Following)
	if a.RegistrationID != "" {
		fmt.Fprintf(w, "  registration: %s\n", a.RegistrationID)
	}
	if a.Bio != "" {
		fmt.Fprintf(w, "  bio: %s\n", a.Bio)
	}
	if a.CaregiverName != "" {
		fmt.Fprintf(w, "  caregiver: %s\n", a.CaregiverName)
	}
	if loc := location(a); loc != "" {
		fmt.Fprintf(w, "  location: %s\n", loc)
	}
	if a.AvatarRef != "" {
		fmt.Fprintf(w, "  avatar: %s\n", abbreviate(a.AvatarRef, 48))
	}
}

func location(a domain.Account) string {
	var parts []string
	for _, p := range []string{a.City, a.State, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func printTransaction(w io.Writer, tx domain.Transaction) {
	fmt.Fprintf(w, "%s  %+6d  %s", tx.At.Format(timeLayout), tx.Signed(), tx.Description)
	if tx.Counterparty != "" {
		fmt.Fprintf(w, "  (%s)", tx.Counterparty)
	}
	fmt.Fprintln(w)
}

// abbreviate shortens data URLs and other long references for display.
func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
