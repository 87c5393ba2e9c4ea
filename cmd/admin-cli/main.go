package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorlink-admin-core/internal/gateway"
	"github.com/noah-isme/tutorlink-admin-core/internal/models"
	"github.com/noah-isme/tutorlink-admin-core/internal/stats"
	"github.com/noah-isme/tutorlink-admin-core/internal/token"
	"github.com/noah-isme/tutorlink-admin-core/internal/workflow"
	"github.com/noah-isme/tutorlink-admin-core/pkg/cache"
	"github.com/noah-isme/tutorlink-admin-core/pkg/config"
	"github.com/noah-isme/tutorlink-admin-core/pkg/export"
	"github.com/noah-isme/tutorlink-admin-core/pkg/logger"
)

const usage = `usage: admin-cli <command> [flags]

commands:
  stats             show the dashboard aggregates
  users             list marketplace users
  tutor             show one tutor's verification record
  approve           approve a pending tutor
  partial-approve   record a partial-approval reason
  reject            reject a pending tutor
  verify-doc        mark one document type verified
  slots             list available interview slots for a date
  assign-slots      propose interview slots to a tutor
  toggle-interview  enable or disable the interview stage
  interview-result  record the outcome of a completed interview
`

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client *gateway.Client
	svc    *workflow.Service
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	source := token.NewSource(logr,
		token.NewMemoryScope(cfg.Auth.SessionToken),
		token.FileScope{Path: cfg.Auth.TokenFile},
	)
	metrics := gateway.NewMetrics()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, metrics.Handler()); err != nil {
				logr.Warn("metrics listener failed", zap.Error(err))
			}
		}()
	}
	client := gateway.New(gateway.Params{
		BaseURL:    cfg.Backend.BaseURL,
		APIPrefix:  cfg.Backend.APIPrefix,
		Tokens:     source,
		HTTPClient: &http.Client{Timeout: cfg.Backend.Timeout},
		Logger:     logr,
		Metrics:    metrics,
		OnAuthExpired: func() {
			fmt.Fprintln(os.Stderr, "session expired: set ADMIN_SESSION_TOKEN or refresh the token file")
		},
	})

	a := &app{
		cfg:    cfg,
		logger: logr,
		client: client,
		svc:    workflow.NewService(client, nil, logr),
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout+10*time.Second)
	defer cancel()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "admin-cli: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "stats":
		return a.runStats(ctx, args)
	case "users":
		return a.runUsers(ctx, args)
	case "tutor":
		return a.runTutor(ctx, args)
	case "approve":
		return a.runTransition(ctx, "approve", args)
	case "partial-approve":
		return a.runTransition(ctx, "partial-approve", args)
	case "reject":
		return a.runTransition(ctx, "reject", args)
	case "verify-doc":
		return a.runVerifyDoc(ctx, args)
	case "slots":
		return a.runSlots(ctx, args)
	case "assign-slots":
		return a.runAssignSlots(ctx, args)
	case "toggle-interview":
		return a.runToggleInterview(ctx, args)
	case "interview-result":
		return a.runInterviewResult(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) runStats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	format := fs.String("export", "", "write a report instead of printing (csv or pdf)")
	out := fs.String("out", "", "report file path (defaults under EXPORT_DIR)")
	ack := fs.Bool("ack", false, "acknowledge current totals, clearing the new-activity badges")
	fs.Parse(args) //nolint:errcheck

	dashboard, err := a.client.DashboardStats(ctx)
	if err != nil {
		return err
	}

	if *format != "" {
		data := export.DashboardDataset(dashboard, time.Now())
		return a.writeExport(data, "Platform overview", *format, *out, "dashboard")
	}

	fmt.Printf("Tutors:   %d total (%d pending, %d verified, %d rejected)\n",
		dashboard.Tutors.Total, dashboard.Tutors.Pending, dashboard.Tutors.Verified, dashboard.Tutors.Rejected)
	fmt.Printf("Students: %d active of %d\n", dashboard.Students.Active, dashboard.Students.Total)
	fmt.Printf("Parents:  %d active of %d\n", dashboard.Parents.Active, dashboard.Parents.Total)
	fmt.Printf("Sessions: %d completed, %d upcoming\n", dashboard.Sessions.Completed, dashboard.Sessions.Upcoming)
	fmt.Printf("Revenue:  %.2f %s this month\n", dashboard.Revenue.ThisMonth, dashboard.Revenue.Currency)

	if !a.cfg.Baseline.Enabled {
		return nil
	}
	baseline, err := a.baseline()
	if err != nil {
		a.logger.Warn("baseline store unavailable", zap.Error(err))
		return nil
	}
	observations := []struct {
		metric string
		label  string
		total  int64
	}{
		{stats.MetricTutorsTotal, "tutors", int64(dashboard.Tutors.Total)},
		{stats.MetricStudentsActive, "students", int64(dashboard.Students.Active)},
		{stats.MetricParentsActive, "parents", int64(dashboard.Parents.Active)},
	}
	for _, obs := range observations {
		if *ack {
			if err := baseline.Acknowledge(ctx, obs.metric, obs.total); err != nil {
				a.logger.Warn("acknowledge failed", zap.String("metric", obs.metric), zap.Error(err))
			}
			continue
		}
		if baseline.ObserveTotal(ctx, obs.metric, obs.total) {
			fmt.Printf("  * new %s since last acknowledged\n", obs.label)
		}
	}
	return nil
}

func (a *app) runUsers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	userType := fs.String("type", "", "filter by role (tutor, student, parent)")
	search := fs.String("search", "", "match against name or email")
	format := fs.String("export", "", "write a report instead of printing (csv or pdf)")
	out := fs.String("out", "", "report file path (defaults under EXPORT_DIR)")
	fs.Parse(args) //nolint:errcheck

	users, err := a.client.ListUsers(ctx, models.UserFilter{
		Role:   models.UserRole(*userType),
		Search: *search,
	})
	if err != nil {
		return err
	}

	if *format != "" {
		return a.writeExport(export.UsersDataset(users), "Marketplace users", *format, *out, "users")
	}

	for _, user := range users {
		status := string(user.Status)
		if status == "" {
			status = "-"
		}
		fmt.Printf("%-10s %-10s %-24s %-10s %s\n", user.UserID, user.Role, user.FullName, status, user.Email)
	}
	counts := stats.CountUsersByStatus(users)
	if len(counts) > 0 {
		fmt.Printf("\n%d pending, %d verified, %d rejected\n",
			counts[models.StatusPending], counts[models.StatusVerified], counts[models.StatusRejected])
	}
	return nil
}

func (a *app) runTutor(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tutor", flag.ExitOnError)
	id := fs.String("id", "", "tutor account id")
	fs.Parse(args) //nolint:errcheck
	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	tutor, err := a.client.TutorApplication(ctx, models.AccountID(*id))
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s>\n", tutor.FullName, tutor.Email)
	fmt.Printf("account %s  profile %s  status %s\n", tutor.UserID, tutor.ID, tutor.Status)
	if tutor.StatusReason != "" {
		fmt.Printf("reason: %s\n", tutor.StatusReason)
	}
	fmt.Printf("subjects: %s\n", strings.Join(tutor.Subjects, ", "))
	fmt.Println("documents:")
	for _, doc := range tutor.Documents {
		mark := " "
		if doc.Verified {
			mark = "x"
		}
		fmt.Printf("  [%s] %-20s %s\n", mark, doc.Type, doc.URL)
	}
	fmt.Printf("checks: background=%t reference=%t qualification=%t\n",
		tutor.BackgroundCheck, tutor.ReferenceCheck, tutor.QualificationCheck)
	fmt.Printf("interview stage: %t, %d slot(s)\n", tutor.InterviewEnabled, len(tutor.InterviewSlots))
	for _, slot := range tutor.InterviewSlots {
		line := fmt.Sprintf("  %s %s", slot.Date, slot.Time)
		if slot.Completed && slot.Result != nil {
			line += " -> " + string(*slot.Result)
		} else if slot.Scheduled {
			line += " (scheduled)"
		}
		fmt.Println(line)
	}

	if err := a.svc.CanApprove(tutor); err != nil {
		fmt.Printf("approval blocked: %v\n", err)
	} else {
		fmt.Println("ready for approval")
	}
	return nil
}

func (a *app) runTransition(ctx context.Context, kind string, args []string) error {
	fs := flag.NewFlagSet(kind, flag.ExitOnError)
	id := fs.String("id", "", "tutor account id")
	reason := fs.String("reason", "", "reason recorded with the transition")
	fs.Parse(args) //nolint:errcheck
	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	tutor, err := a.client.TutorApplication(ctx, models.AccountID(*id))
	if err != nil {
		return err
	}

	switch kind {
	case "approve":
		err = a.svc.Approve(ctx, tutor, *reason)
	case "partial-approve":
		err = a.svc.PartialApprove(ctx, tutor, *reason)
	case "reject":
		err = a.svc.Reject(ctx, tutor, *reason)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s is now %s\n", kind, tutor.UserID, tutor.Status)
	return nil
}

func (a *app) runVerifyDoc(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("verify-doc", flag.ExitOnError)
	id := fs.String("id", "", "tutor account id")
	docType := fs.String("type", "", `document type (e.g. "ID Proof")`)
	fs.Parse(args) //nolint:errcheck
	if *id == "" || *docType == "" {
		return fmt.Errorf("--id and --type are required")
	}

	tutor, err := a.client.TutorApplication(ctx, models.AccountID(*id))
	if err != nil {
		return err
	}
	if err := a.svc.VerifyDocument(ctx, tutor, models.DocumentType(*docType)); err != nil {
		return err
	}
	fmt.Printf("%s verified for %s\n", *docType, tutor.UserID)
	if tutor.AllDocumentsVerified() {
		fmt.Println("all documents verified")
	}
	return nil
}

func (a *app) runSlots(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("slots", flag.ExitOnError)
	date := fs.String("date", time.Now().AddDate(0, 0, 1).Format("2006-01-02"), "date (YYYY-MM-DD)")
	fs.Parse(args) //nolint:errcheck

	for _, slot := range a.client.AvailableInterviewSlots(ctx, *date) {
		marker := ""
		if !slot.Available {
			marker = "  (unavailable)"
		}
		fmt.Printf("%s %s%s\n", slot.Date, slot.Time, marker)
	}
	return nil
}

func (a *app) runAssignSlots(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("assign-slots", flag.ExitOnError)
	id := fs.String("id", "", "tutor account id")
	date := fs.String("date", "", "date (YYYY-MM-DD)")
	times := fs.String("times", "", "comma-separated times (e.g. 09:00,14:00)")
	fs.Parse(args) //nolint:errcheck
	if *id == "" || *date == "" || *times == "" {
		return fmt.Errorf("--id, --date and --times are required")
	}

	picker := workflow.NewSlotPicker(*date)
	for _, t := range strings.Split(*times, ",") {
		picker.Select(strings.TrimSpace(t))
	}
	if picker.Len() == 0 {
		return fmt.Errorf("no valid times given")
	}

	tutor, err := a.client.TutorApplication(ctx, models.AccountID(*id))
	if err != nil {
		return err
	}
	if err := a.svc.SetPreferredSlots(ctx, tutor, picker.ISODateTimes()); err != nil {
		return err
	}
	fmt.Printf("proposed %d slot(s) on %s to %s\n", picker.Len(), *date, tutor.UserID)
	return nil
}

func (a *app) runToggleInterview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("toggle-interview", flag.ExitOnError)
	id := fs.String("id", "", "tutor account id")
	enabled := fs.Bool("enabled", true, "whether the interview stage is required")
	fs.Parse(args) //nolint:errcheck
	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	tutor, err := a.client.TutorApplication(ctx, models.AccountID(*id))
	if err != nil {
		return err
	}
	if err := a.svc.ToggleInterview(ctx, tutor, *enabled); err != nil {
		return err
	}
	fmt.Printf("interview stage for %s (profile %s): %t\n", tutor.UserID, tutor.ID, tutor.InterviewEnabled)
	return nil
}

func (a *app) runInterviewResult(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("interview-result", flag.ExitOnError)
	id := fs.String("id", "", "tutor account id")
	outcome := fs.String("outcome", "", "passed, failed, conditional or reschedule")
	score := fs.Int("score", 0, "score from 0 to 100")
	feedback := fs.String("feedback", "", "interviewer notes")
	fs.Parse(args) //nolint:errcheck
	if *id == "" || *outcome == "" {
		return fmt.Errorf("--id and --outcome are required")
	}

	tutor, err := a.client.TutorApplication(ctx, models.AccountID(*id))
	if err != nil {
		return err
	}
	err = a.svc.RecordInterviewResult(ctx, tutor, workflow.InterviewResultRequest{
		Outcome:  models.InterviewOutcome(*outcome),
		Score:    *score,
		Feedback: *feedback,
	})
	if err != nil {
		return err
	}
	fmt.Printf("recorded %s for %s\n", *outcome, tutor.UserID)
	return nil
}

func (a *app) baseline() (*stats.Baseline, error) {
	client, err := cache.NewRedis(a.cfg.Redis)
	if err != nil {
		return nil, err
	}
	return stats.NewBaseline(stats.NewRedisStore(client), a.cfg.Baseline.KeyPrefix, a.logger), nil
}

func (a *app) writeExport(data export.Dataset, title, format, out, name string) error {
	var (
		rendered []byte
		err      error
	)
	switch format {
	case "csv":
		rendered, err = export.NewCSVExporter().Render(data)
	case "pdf":
		rendered, err = export.NewPDFExporter().Render(data, title)
	default:
		return fmt.Errorf("unknown export format %q (want csv or pdf)", format)
	}
	if err != nil {
		return err
	}

	path := out
	if path == "" {
		if err := os.MkdirAll(a.cfg.Export.Dir, 0o755); err != nil {
			return err
		}
		path = filepath.Join(a.cfg.Export.Dir,
			fmt.Sprintf("%s-%s.%s", name, time.Now().Format("20060102-150405"), format))
	}
	if err := os.WriteFile(path, rendered, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
