package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/messmate/mess-client/internal/adapters/api"
	"github.com/messmate/mess-client/internal/adapters/storage"
	"github.com/messmate/mess-client/internal/config"
	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/ports"
	"github.com/messmate/mess-client/internal/core/services"
)

const usage = `Usage: messctl <command> [flags]

Commands:
  login      -u <username> -p <password>
  logout
  whoami
  plans
  subs
  leaves
  payments
  feedback
  notifications
`

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout*2)
	defer cancel()

	tokens, _, err := storage.SelectTokenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to set up token store: %v", err)
	}
	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, tokens)
	session := services.NewSessionService(client, tokens).WithTokenExpiry(api.TokenExpiry)
	client.SetOnUnauthorized(session.Logout)

	// The CLI is synchronous, so the startup probe just runs inline.
	session.Initialize(ctx)

	switch os.Args[1] {
	case "login":
		runLogin(ctx, session, os.Args[2:])
	case "logout":
		session.Logout()
		fmt.Println("Logged out.")
	case "whoami":
		runWhoami(ctx, session, tokens)
	case "plans":
		runPlans(ctx, client, session)
	case "subs":
		runSubscriptions(ctx, client, session)
	case "leaves":
		runLeaves(ctx, client, session)
	case "payments":
		runPayments(ctx, client, session)
	case "feedback":
		runFeedback(ctx, client, session)
	case "notifications":
		runNotifications(ctx, client, session)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runLogin(ctx context.Context, session *services.SessionService, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	fs.Parse(args)

	if *username == "" || *password == "" {
		log.Fatal("login requires -u and -p")
	}

	if err := session.Login(ctx, *username, *password); err != nil {
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			log.Fatalf("Login failed: %s", authErr.Error())
		}
		log.Fatalf("Login failed: %v", err)
	}

	if ident := session.Identity(); ident != nil {
		fmt.Printf("Logged in as %s (%s, status %s)\n", ident.Username, ident.Role, ident.Status)
	} else {
		fmt.Println("Logged in; complete OTP verification to activate your account.")
	}
}

func runWhoami(ctx context.Context, session *services.SessionService, tokens ports.TokenStore) {
	ident := session.Identity()
	if ident == nil {
		fmt.Println("Not logged in.")
		return
	}
	fmt.Printf("%s <%s>\n", ident.Username, ident.Email)
	fmt.Printf("  role:   %s\n", ident.Role)
	fmt.Printf("  status: %s\n", ident.Status)
	if ident.PreferredDeliveryTime != "" {
		fmt.Printf("  delivery: %s\n", ident.PreferredDeliveryTime)
	}
	if pair, err := tokens.Load(ctx); err == nil {
		if exp, err := api.TokenExpiry(pair.Access); err == nil {
			fmt.Printf("  token expires: %s\n", exp.Local().Format(time.RFC3339))
		}
	}
}

// requireSession exits unless a fully onboarded identity is present,
// mirroring the route guard's verdict for protected views.
func requireSession(session *services.SessionService) {
	loading, ident := session.Snapshot()
	decision := services.Decide(loading, ident, services.PathDashboard)
	switch decision.Action {
	case services.ActionRender:
		return
	case services.ActionRedirect:
		if decision.Notice != nil {
			log.Fatalf("%s: %s", decision.Notice.Title, decision.Notice.Body)
		}
		log.Fatal("Not logged in. Run: messctl login -u <username> -p <password>")
	default:
		log.Fatal("Session is still initializing, try again.")
	}
}

func runPlans(ctx context.Context, client *api.Client, session *services.SessionService) {
	requireSession(session)
	plans, err := client.Plans(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch plans: %v", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSERVICE\tPRICE\tDAYS\tACTIVE")
	for _, p := range plans {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\t%t\n", p.ID, p.Name, p.ServiceType, p.BasePrice, p.DurationDays, p.IsActive)
	}
	w.Flush()
}

func runSubscriptions(ctx context.Context, client *api.Client, session *services.SessionService) {
	requireSession(session)
	subs, err := client.Subscriptions(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch subscriptions: %v", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSTART\tENDS\tSTATUS\tDAYS LEFT")
	for _, s := range subs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
			s.ID, s.SubscriptionType, s.StartDate, s.AdjustedEndDate, s.Status, s.RemainingDays(time.Now()))
	}
	w.Flush()
}

func runLeaves(ctx context.Context, client *api.Client, session *services.SessionService) {
	requireSession(session)
	leaves, err := client.Leaves(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch leaves: %v", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFROM\tTO\tDAYS\tSTATUS\tREASON")
	for _, l := range leaves {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			l.ID, l.LeaveStartDate, l.LeaveEndDate, l.Days(), l.Status, l.Reason)
	}
	w.Flush()
}

func runPayments(ctx context.Context, client *api.Client, session *services.SessionService) {
	requireSession(session)
	payments, err := client.Payments(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch payments: %v", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGATEWAY\tAMOUNT\tCURRENCY\tSTATUS\tDATE")
	for _, p := range payments {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\t%s\n",
			p.ID, p.PaymentGateway, p.Amount, p.Currency, p.Status, p.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()
}

func runFeedback(ctx context.Context, client *api.Client, session *services.SessionService) {
	requireSession(session)
	items, err := client.FeedbackList(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch feedback: %v", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSUBJECT\tSTATUS\tPRIORITY")
	for _, f := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", f.ID, f.FeedbackType, f.Subject, f.Status, f.Priority)
	}
	w.Flush()
}

func runNotifications(ctx context.Context, client *api.Client, session *services.SessionService) {
	requireSession(session)
	logs, err := client.NotificationLogs(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch notification logs: %v", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tCHANNEL\tSTATUS\tSENT")
	for _, n := range logs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			n.ID, n.NotificationType, n.Channel, n.Status, n.SentAt.Format(time.RFC3339))
	}
	w.Flush()
}
