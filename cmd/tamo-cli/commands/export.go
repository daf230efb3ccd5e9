package commands

import (
	"log/slog"
	"os"
	"tamoassist-backend/lib/icsutil"
	"tamoassist-backend/lib/serviceutil"
	"tamoassist-backend/lib/timezone"
	"time"

	"github.com/spf13/cobra"
)

var (
	exportOut       string
	exportWeekStart string
	exportFile      string
)

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "week.ics", "The iCalendar file to write.")
	exportCmd.Flags().StringVar(&exportWeekStart, "week-start", "", "Any date (YYYY-MM-DD) in the week the timetable belongs to, defaults to the current week.")
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Reads a saved schedule page instead of logging in.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [--out <week.ics>] [--week-start <YYYY-MM-DD>] [--file <page.html>]",
	Short: "Exports this week's timetable as an iCalendar file.",
	Run: func(cmd *cobra.Command, args []string) {
		weekStart := timezone.Now()
		if exportWeekStart != "" {
			parsed, err := time.ParseInLocation(time.DateOnly, exportWeekStart, timezone.Location)
			if err != nil {
				serviceutil.Fatal("failed to parse --week-start", err)
			}
			weekStart = parsed
		}

		days := loadSchedule(cmd.Context(), exportFile)
		cal := icsutil.FromDays(days, weekStart)

		err := os.WriteFile(exportOut, []byte(cal.Serialize()), 0644)
		if err != nil {
			serviceutil.Fatal("failed to write calendar", err)
		}
		slog.Info("exported timetable", "path", exportOut, "events", len(cal.Events()))
	},
}
