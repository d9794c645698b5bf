// Command scan prints data availability for every participant without
// starting the web server. Useful for checking a freshly synced study folder.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"streamdash/app"
	"streamdash/internal"
	"streamdash/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	service := app.NewDashboardService(cfg.Paths.DataBasePath, cfg.Cache.TTL, internal.DefaultLogger)
	names, err := service.ListParticipants()
	if err != nil {
		log.Fatal("Failed to list participants: ", err)
	}
	if len(names) == 0 {
		fmt.Println("no participant folders found under", cfg.Paths.DataBasePath)
		return
	}

	ctx := context.Background()
	failures := 0
	for _, name := range names {
		summary, err := service.Summarize(ctx, name)
		if err != nil {
			fmt.Printf("%-20s ERROR: %v\n", name, err)
			failures++
			continue
		}
		fmt.Printf("%-20s wristband: %3d days / %6.1f h   sleep: %2d nights   meditation: %2d sessions   diary entries: %d\n",
			name,
			summary.Wristband.DaysWithData,
			summary.Wristband.TotalHours,
			summary.Sleep.Count,
			summary.Meditation.Count,
			diaryTotal(summary),
		)
		if skipped := summary.Timeline.Diag.Total(); skipped > 0 {
			fmt.Printf("%-20s   %d malformed records skipped\n", "", skipped)
		}
	}
	if failures > 0 {
		os.Exit(1)
	}
}

func diaryTotal(summary *app.Summary) int {
	total := 0
	for _, n := range summary.Subjective {
		total += n
	}
	return total
}
