package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"tamoassist-backend/lib/scrapers/tamo/schedule"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	scheduleFile string
	scheduleJson bool
)

func init() {
	scheduleCmd.Flags().StringVar(&scheduleFile, "file", "", "Reads a saved schedule page instead of logging in.")
	scheduleCmd.Flags().BoolVar(&scheduleJson, "json", false, "Prints the week as json.")
	rootCmd.AddCommand(scheduleCmd)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

// the portal lists days starting from monday
func weekdayName(i int) string {
	return time.Weekday((i + 1) % 7).String()
}

func renderDay(i int, day *schedule.SchoolDay) {
	t := newTable()
	t.SetTitle(weekdayName(i))
	t.AppendHeader(table.Row{"#", "Time", "Subject", "Teacher"})
	if day.Len() == 0 {
		t.AppendRow(table.Row{"", "", "No lessons", ""})
	}
	for _, lesson := range day.Lessons() {
		t.AppendRow(table.Row{
			lesson.Ordinal,
			fmt.Sprintf("%s-%s", lesson.Start, lesson.End),
			lesson.Subject,
			lesson.Teacher.DisplayName(),
		})
	}
	t.Render()
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [--file <page.html>] [--json]",
	Short: "Prints this week's timetable.",
	Run: func(cmd *cobra.Command, args []string) {
		days := loadSchedule(cmd.Context(), scheduleFile)

		if scheduleJson {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			err := encoder.Encode(days)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}

		for i, day := range days {
			renderDay(i, day)
		}
	},
}
