package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/myhealth/portal/internal/portal/app"
	"github.com/myhealth/portal/internal/portal/domain"
)

const usage = `usage: portal <command> [flags]

commands:
  users                       list directory records
  tickets                     list the admin ticket queue, newest first
  send    -from U -to U -text T   send a caregiver message (raises a ticket)
  issue   -about U -text T        file an issue against a patient
  resolve -id ID                  toggle a ticket's resolved state
`

func main() {
	// Local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer application.Close()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(application, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func run(application *app.Application, command string, args []string) error {
	ctx := application.Context()

	switch command {
	case "users":
		for _, u := range application.Directory.List(ctx) {
			fmt.Printf("%-30s %-10s %-20s %s\n", u.ID, u.Role, u.Username, u.FullName)
		}
		return nil

	case "tickets":
		for _, t := range application.Tickets.RenderOrder(ctx) {
			state := "open"
			if t.Resolved {
				state = "resolved"
			}
			fmt.Printf("%-30s %-9s %s -> %s: %s\n",
				t.ID, state, t.FromCaregiverName, t.PatientName, t.Text)
		}
		return nil

	case "send":
		fs := flag.NewFlagSet("send", flag.ExitOnError)
		from := fs.String("from", "", "caregiver username")
		to := fs.String("to", "", "patient username")
		text := fs.String("text", "", "message text")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *from == "" || *to == "" || *text == "" {
			return fmt.Errorf("-from, -to and -text are required")
		}

		caregiver, err := application.Directory.FindByField(ctx, "username", *from)
		if err != nil || caregiver.Role != domain.RoleCaregiver {
			return fmt.Errorf("no caregiver with username %q", *from)
		}
		patient, err := application.Directory.FindByField(ctx, "username", *to)
		if err != nil || patient.Role != domain.RolePatient {
			return fmt.Errorf("no patient with username %q", *to)
		}

		return application.Messages.SendFromCaregiver(ctx, caregiver, patient, *text)

	case "issue":
		fs := flag.NewFlagSet("issue", flag.ExitOnError)
		about := fs.String("about", "", "patient username")
		text := fs.String("text", "", "issue text")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *about == "" || *text == "" {
			return fmt.Errorf("-about and -text are required")
		}

		patient, err := application.Directory.FindByField(ctx, "username", *about)
		if err != nil || patient.Role != domain.RolePatient {
			return fmt.Errorf("no patient with username %q", *about)
		}

		return application.Issues.Add(ctx, patient.ID, string(domain.RoleCaregiver), *text)

	case "resolve":
		fs := flag.NewFlagSet("resolve", flag.ExitOnError)
		id := fs.String("id", "", "ticket id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *id == "" {
			return fmt.Errorf("-id is required")
		}
		return application.Tickets.ToggleResolved(ctx, *id)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}
