package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"tamoassist-backend/lib/restyutil"
	"tamoassist-backend/lib/scrapers/tamo/schedule"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://dienynas.tamo.lt"

var LoginFailed = fmt.Errorf("Failed to login to your account.")
var ErrScheduleNotFound = errors.New("schedule container not found in page")

// Client is a single TAMO session. It is not safe for concurrent use.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	loggedIn *bool
	schedule *schedule.Schedule
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl          string
	CloudflareBypass bool
	// defaults to 30 seconds
	Timeout          time.Duration
	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(
		recordRedirects,
		resty.FlexibleRedirectPolicy(10),
		resty.DomainCheckRedirectPolicy(baseUrl.Hostname()),
	)
	client.SetTimeout(opts.Timeout)

	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	slog.DebugContext(ctx, "created tamo client", "base_url", opts.BaseUrl, "cloudflare_bypass", opts.CloudflareBypass)

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

type redirectTraceKey struct{}

// redirectTrace collects the status codes of every redirect a request
// went through.
type redirectTrace struct {
	statuses []int
}

var recordRedirects = resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
	trace, ok := req.Context().Value(redirectTraceKey{}).(*redirectTrace)
	if ok && req.Response != nil {
		trace.statuses = append(trace.statuses, req.Response.StatusCode)
	}
	return nil
})

func parseDocument(res *resty.Response) (*goquery.Document, error) {
	if res.IsError() {
		return nil, fmt.Errorf("unexpected status %d from %s", res.StatusCode(), res.Request.URL)
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

func (c *Client) LoginUsernamePassword(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:LoginUsernamePassword")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/Prisijungimas/Login")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}
	doc, err := parseDocument(res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse login page html")
		return err
	}

	stoken := doc.Find("input[name=SToken]").AttrOr("value", "")
	timestamp := doc.Find("input[name=Timestamp]").AttrOr("value", "")
	if stoken == "" || timestamp == "" {
		span.SetStatus(codes.Error, "failed to find login token")
		return fmt.Errorf("could not find login token")
	}

	_, err = c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"UserName":       username,
			"Password":       password,
			"IsMobileUser":   "false",
			"ReturnUrl":      "",
			"RequireCaptcha": "false",
			"Timestamp":      timestamp,
			"SToken":         stoken,
		}).
		Post("/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	c.loggedIn = nil
	c.schedule = nil

	loggedIn, err := c.LoggedIn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check login state")
		return err
	}
	if !loggedIn {
		span.SetStatus(codes.Error, LoginFailed.Error())
		return LoginFailed
	}
	return nil
}

// LoggedIn asks the portal for the dashboard, an anonymous session gets
// bounced to the login page with a 302. A successful answer is kept until
// the next login.
func (c *Client) LoggedIn(ctx context.Context) (bool, error) {
	if c.loggedIn != nil {
		return *c.loggedIn, nil
	}

	ctx, span := tracer.Start(ctx, "client:LoggedIn")
	defer span.End()

	trace := &redirectTrace{}
	_, err := c.Http.R().
		SetContext(context.WithValue(ctx, redirectTraceKey{}, trace)).
		SetQueryParam("clickMode", "True").
		Get("/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch dashboard")
		return false, err
	}

	loggedIn := true
	for _, status := range trace.statuses {
		if status == http.StatusFound {
			loggedIn = false
			break
		}
	}
	span.SetAttributes(
		attribute.Bool("logged_in", loggedIn),
		attribute.IntSlice("redirects", trace.statuses),
	)
	slog.DebugContext(ctx, "checked login state", "logged_in", loggedIn, "redirects", trace.statuses)

	c.loggedIn = &loggedIn
	return loggedIn, nil
}

// ScheduleMarkup fetches the student's weekly timetable and returns its
// div#c_main container.
func (c *Client) ScheduleMarkup(ctx context.Context) (*goquery.Selection, error) {
	ctx, span := tracer.Start(ctx, "client:ScheduleMarkup")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Post("/TvarkarascioIrasas/MokinioTvarkarastis")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch schedule page")
		return nil, err
	}
	doc, err := parseDocument(res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse schedule page html")
		return nil, err
	}

	container := doc.Find("div#c_main").First()
	if container.Length() == 0 {
		span.SetStatus(codes.Error, ErrScheduleNotFound.Error())
		return nil, ErrScheduleNotFound
	}
	return container, nil
}

// Schedule returns the session's timetable, fetching it on first use.
// The first call's opts decide how it is parsed, later calls return the
// cached Schedule and ignore opts until the next login or Close.
func (c *Client) Schedule(ctx context.Context, opts schedule.Options) (*schedule.Schedule, error) {
	if c.schedule != nil {
		return c.schedule, nil
	}
	sched, err := schedule.Fetch(ctx, c, opts)
	if err != nil {
		return nil, err
	}
	c.schedule = sched
	return sched, nil
}

// Close drops the session cookies and any cached state, the client can
// log in again afterwards.
func (c *Client) Close() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	c.Http.SetCookieJar(jar)
	c.Http.GetClient().CloseIdleConnections()
	c.loggedIn = nil
	c.schedule = nil
	return nil
}
