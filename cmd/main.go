package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/pprof"
	"net/url"
	"os"
	"reflect"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/events"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/aukilabs/skipta/featureflag"
	skiptahttp "github.com/aukilabs/skipta/http"
	"github.com/aukilabs/skipta/smoketest"
	skiptaws "github.com/aukilabs/skipta/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"golang.org/x/net/websocket"
)

var (
	// The Skipta version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "skipta_info",
		Help:        "Skipta information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	Addr               string          `cli:""        env:"SKIPTA_ADDR"                 help:"Listening address for client connections."`
	AdminAddr          string          `cli:""        env:"SKIPTA_ADMIN_ADDR"           help:"Admin listening address."`
	PublicEndpoint     string          `cli:""        env:"SKIPTA_PUBLIC_ENDPOINT"      help:"The public endpoint where this Skipta server is reachable."`
	LogLevel           string          `cli:""        env:"SKIPTA_LOG_LEVEL"            help:"Log level (debug|info|warning|error)."`
	LogIndent          bool            `cli:""        env:"SKIPTA_LOG_INDENT"           help:"Indent logs."`
	ClientIdleTimeout  time.Duration   `cli:",hidden" env:"SKIPTA_CLIENT_IDLE_TIMEOUT"  help:"Time until an idle client will be disconnected"`
	LogSummaryInterval time.Duration   `cli:",hidden" env:"SKIPTA_LOG_SUMMARY_INTERVAL" help:"The duration between each log summary by connection."`
	MaxPoints          int             `cli:",hidden" env:"SKIPTA_MAX_POINTS"           help:"The maximum number of points a session accepts."`
	SmokeTest          smokeTestConfig `cli:",hidden" env:"-"                           help:"Smoke test configuration."`
	Events             eventsConfig    `cli:",hidden" env:"-"                           help:"Event pusher configuration."`
	FeatureFlags       []string        `cli:",hidden" env:"SKIPTA_FEATURE_FLAGS"        help:"Comma separated feature flags"`
	Version            bool            `cli:""        env:"-"                           help:"Show version."`
	Help               bool            `cli:""        env:"-"                           help:"Show help."`
}

type smokeTestConfig struct {
	ResultEndpoint string `cli:",hidden" env:"SKIPTA_SMOKE_TEST_RESULT_ENDPOINT" help:"Endpoint to where smoke test results are posted."`
}

type eventsConfig struct {
	Endpoint      string        `cli:",hidden" env:"SKIPTA_EVENTS_ENDPOINT"       help:"Endpoint to where events are pushed."`
	FlushInterval time.Duration `cli:",hidden" env:"SKIPTA_EVENTS_FLUSH_INTERVAL" help:"The duration between each event flush."`
	BatchSize     int           `cli:",hidden" env:"SKIPTA_EVENTS_BATCH_SIZE"     help:"The maximum number of events sent at once."`
	QueueSize     int           `cli:",hidden" env:"SKIPTA_EVENTS_QUEUE_SIZE"     help:"The size of the queue where events are stored."`
}

func main() {
	conf := config{
		Addr:               ":4000",
		AdminAddr:          ":18190",
		PublicEndpoint:     "http://localhost:4000",
		LogLevel:           logs.InfoLevel.String(),
		ClientIdleTimeout:  time.Minute * 5,
		LogSummaryInterval: time.Minute,
		MaxPoints:          skiptaws.DefaultMaxPoints,
		Events: eventsConfig{
			FlushInterval: events.DefaultFlushInterval,
			BatchSize:     events.DefaultBatchSize,
			QueueSize:     events.DefaultQueueSize,
		},
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Starts Skipta server.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	transport := metrics.HTTPTransport(http.DefaultTransport)

	if conf.Events.Endpoint != "" {
		eventsPusher := events.Pusher{
			Endpoint:      conf.Events.Endpoint,
			FlushInterval: conf.Events.FlushInterval,
			BatchSize:     conf.Events.BatchSize,
			QueueSize:     conf.Events.QueueSize,
			Transport:     transport,
		}
		go eventsPusher.Start()
		defer eventsPusher.Close()

		eventsLogger := events.Logger{
			Pusher:           &eventsPusher,
			SDKType:          "skipta",
			SDKVersionFamily: version,
		}
		logs.SetLogger(eventsLogger.Log)
	}

	var service http.ServeMux

	service.HandleFunc("/health", skiptahttp.HandleHealthCheck)
	service.Handle("/version", skiptahttp.HandleWithCORS(skiptahttp.HandleVersion(version)))

	readinessCheck := func() bool {
		return true
	}
	service.Handle("/ready", skiptahttp.HandleWithCORS(skiptahttp.HandleReadyCheck(readinessCheck)))

	resultClient := &http.Client{Transport: transport}
	service.Handle("/smoke-test", skiptahttp.HandleWithCORS(smoketest.HandleSmokeTest(ctx, smoketest.Options{
		Endpoint:   conf.PublicEndpoint,
		UserAgent:  fmt.Sprintf("Skipta %s", version),
		SendResult: sendSmokeTestResult(resultClient, conf.SmokeTest.ResultEndpoint),
	})))

	service.Handle("/", skiptahttp.HandleWithCORS(websocket.Server{
		Handshake: func(c *websocket.Config, r *http.Request) error {
			return nil
		},
		Handler: func(conn *websocket.Conn) {
			defer conn.Close()

			var h skiptaws.Handler = &skiptaws.SessionHandler{
				ClientIdleTimeout: conf.ClientIdleTimeout,
				MaxPoints:         conf.MaxPoints,
				FeatureFlags:      featureflag.New(conf.FeatureFlags),
			}
			h = skiptaws.HandlerWithLogs(h, conf.LogSummaryInterval)
			h = skiptaws.HandlerWithMetrics(h, conf.PublicEndpoint)
			defer h.Close()

			skiptaws.Handle(ctx, conn, h)
		},
	}))

	service.Handle("/ping", websocket.Server{
		Handler: func(ws *websocket.Conn) {
			defer ws.Close()
			io.Copy(ws, ws)
		},
	})

	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", skiptahttp.HandleHealthCheck)
	admin.HandleFunc("/debug/pprof/", pprof.Index)
	admin.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	admin.HandleFunc("/debug/pprof/profile", pprof.Profile)
	admin.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	admin.HandleFunc("/debug/pprof/trace", pprof.Trace)
	admin.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	admin.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	admin.Handle("/debug/pprof/threadcreate", pprof.Handler("threadcreate"))
	admin.Handle("/debug/pprof/block", pprof.Handler("block"))
	admin.HandleFunc("/ready", skiptahttp.HandleReadyCheck(readinessCheck))

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("endpoint", conf.PublicEndpoint).
		Info("starting skipta server")

	skiptahttp.ListenAndServe(ctx,
		&http.Server{Addr: conf.Addr, Handler: metrics.HTTPHandler(&service,
			skiptahttp.MetricsPathFormatter)},
		&http.Server{Addr: conf.AdminAddr, Handler: &admin},
	)
}

func sendSmokeTestResult(client *http.Client, endpoint string) func(context.Context, smoketest.SmokeTestResults) error {
	return func(ctx context.Context, res smoketest.SmokeTestResults) error {
		if endpoint == "" {
			logs.WithTag("from_endpoint", res.FromEndpoint).
				WithTag("to_endpoint", res.ToEndpoint).
				WithTag("status", res.Status).
				WithTag("latency_ms", res.LatencyMilliSec).
				Info("smoke test completed")
			return nil
		}

		body, err := json.Marshal(res)
		if err != nil {
			return errors.New("encoding smoke test result failed").Wrap(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return errors.New("creating smoke test result request failed").Wrap(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errors.New("posting smoke test result failed").Wrap(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			return errors.New("smoke test result was rejected").
				WithTag("status_code", resp.StatusCode)
		}
		return nil
	}
}

func validateConfig(conf config) error {
	if _, err := url.ParseRequestURI(conf.PublicEndpoint); err != nil {
		return errors.New("invalid public endpoint").Wrap(err)
	}

	if conf.MaxPoints < 0 {
		return errors.New("max points must not be negative").
			WithTag("max_points", conf.MaxPoints)
	}

	return nil
}
