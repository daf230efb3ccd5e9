package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"tamoassist-backend/lib/configutil"
	"tamoassist-backend/lib/restyutil"
	"tamoassist-backend/lib/scrapers/tamo/core"
	"tamoassist-backend/lib/scrapers/tamo/schedule"
	"tamoassist-backend/lib/serviceutil"

	"github.com/PuerkitoBio/goquery"
)

type Config struct {
	BaseUrl          string `json:"base_url"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	OrdinalsFile     string `json:"ordinals_file"`
	DaySelector      string `json:"day_selector"`
	NoLessonsMarker  string `json:"no_lessons_marker"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
}

func (c Config) scheduleOptions() schedule.Options {
	return schedule.Options{
		OrdinalsFile:    c.OrdinalsFile,
		DaySelector:     schedule.ParseDaySelector(c.DaySelector),
		NoLessonsMarker: c.NoLessonsMarker,
	}
}

// loadConfig allows a missing config file when the command can run
// without credentials.
func loadConfig(requireCredentials bool) Config {
	cfg, err := configutil.ReadConfig[Config](configPath)
	if errors.Is(err, os.ErrNotExist) && !requireCredentials {
		slog.Debug("no config file found, using defaults", "path", configPath)
		return Config{}
	}
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if requireCredentials && (cfg.Username == "" || cfg.Password == "") {
		serviceutil.Fatal("config is missing credentials", errors.New("username and password must be set"))
	}
	return cfg
}

func createClient(ctx context.Context, cfg Config) *core.Client {
	opts := core.ClientOptions{
		BaseUrl:          cfg.BaseUrl,
		CloudflareBypass: cfg.CloudflareBypass,
	}
	if dumpHttp != "" {
		output, err := restyutil.NewFilesystemOutput(dumpHttp)
		if err != nil {
			serviceutil.Fatal("failed to prepare http dump directory", err)
		}
		opts.InstrumentOutput = output
	}

	client, err := core.NewClient(ctx, opts)
	if err != nil {
		serviceutil.Fatal("failed to initialize tamo client", err)
	}
	return client
}

func login(ctx context.Context, cfg Config) *core.Client {
	client := createClient(ctx, cfg)
	slog.Info("logging in", "username", cfg.Username)
	err := client.LoginUsernamePassword(ctx, cfg.Username, cfg.Password)
	if err != nil {
		serviceutil.Fatal("failed to login to tamo", err)
	}
	return client
}

// loadSchedule reads a saved schedule page when file is set, otherwise
// it logs in and fetches the current week.
func loadSchedule(ctx context.Context, file string) []*schedule.SchoolDay {
	var sched *schedule.Schedule
	if file != "" {
		cfg := loadConfig(false)
		contents, err := os.ReadFile(file)
		if err != nil {
			serviceutil.Fatal("failed to read schedule page", err)
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(contents))
		if err != nil {
			serviceutil.Fatal("failed to parse schedule page", err)
		}
		container := doc.Find("div#c_main").First()
		if container.Length() == 0 {
			serviceutil.Fatal("failed to read schedule page", core.ErrScheduleNotFound)
		}
		sched, err = schedule.NewSchedule(container, cfg.scheduleOptions())
		if err != nil {
			serviceutil.Fatal("failed to create schedule", err)
		}
	} else {
		cfg := loadConfig(true)
		client := login(ctx, cfg)
		defer client.Close()

		var err error
		sched, err = client.Schedule(ctx, cfg.scheduleOptions())
		if err != nil {
			serviceutil.Fatal("failed to fetch schedule", err)
		}
	}

	days, err := sched.Days()
	if err != nil {
		serviceutil.Fatal("failed to parse schedule", err)
	}
	return days
}
