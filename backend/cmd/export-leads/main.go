package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"packsite/backend/internal/app"
	"packsite/backend/internal/infra/logger"
	"packsite/backend/internal/repository"
	leadsvc "packsite/backend/internal/service/lead"
)

var (
	kind   = flag.String("kind", "contacts", "what to export: contacts or applications")
	since  = flag.String("since", "", "only rows created at or after this date (yyyy-MM-dd or RFC 3339)")
	output = flag.String("output", "", "output file, defaults to stdout")
)

// Exports lead submissions as CSV, the offline twin of the admin export
// endpoint.
func main() {
	flag.Parse()

	zapLogger, err := logger.Init()
	if err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}
	defer logger.Sync()
	sugar := zapLogger.Sugar()

	cutoff, err := parseSince(*since)
	if err != nil {
		sugar.Fatalw("invalid since flag", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resources, err := app.Bootstrap(ctx)
	if err != nil {
		sugar.Fatalw("bootstrap resources failed", "error", err)
	}
	defer func() {
		if closeErr := resources.Close(); closeErr != nil {
			sugar.Warnw("close resources failed", "error", closeErr)
		}
	}()

	out := os.Stdout
	if *output != "" {
		file, err := os.Create(*output)
		if err != nil {
			sugar.Fatalw("create output file failed", "error", err)
		}
		defer file.Close()
		out = file
	}

	// No notifier: the export is read-only.
	service := leadsvc.NewService(repository.NewLeadRepository(resources.DB), nil, "")

	switch strings.ToLower(strings.TrimSpace(*kind)) {
	case "contacts":
		err = service.ExportContactsCSV(ctx, out, cutoff)
	case "applications":
		err = service.ExportApplicationsCSV(ctx, out, cutoff)
	default:
		sugar.Fatalw("unknown kind", "kind", *kind)
	}
	if err != nil {
		sugar.Fatalw("export failed", "kind", *kind, "error", err)
	}
}

func parseSince(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}
