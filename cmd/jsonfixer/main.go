package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	sdk "go.opentelemetry.io/otel/sdk/metric"

	"github.com/looplj/jsonfixer/conf"
	"github.com/looplj/jsonfixer/internal/build"
	"github.com/looplj/jsonfixer/internal/log"
	"github.com/looplj/jsonfixer/internal/metrics"
	"github.com/looplj/jsonfixer/internal/server"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "config":
			handleConfigCommand()
			return
		case "repair":
			os.Exit(handleRepairCommand(os.Args[2:]))
		case "version", "--version", "-v":
			showVersion()
			return
		case "help", "--help", "-h":
			showHelp()
			return
		case "build-info":
			showBuildInfo()
			return
		}
	}

	startServer()
}

func showBuildInfo() {
	fmt.Print(build.GetBuildInfo())
}

type logger struct{}

func (l *logger) LogEvent(event fxevent.Event) {
	log.Debug(context.Background(), "fx event", log.Any("event", event))
}

func startServer() {
	server.Run(
		fx.WithLogger(func() fxevent.Logger {
			return &logger{}
		}),
		fx.Provide(conf.Load),
		fx.Provide(metrics.NewProvider),
		fx.Invoke(func(lc fx.Lifecycle, provider *sdk.MeterProvider) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					metrics.SetupMetrics(provider)
					return nil
				},
				OnStop: func(ctx context.Context) error {
					if provider != nil {
						return provider.Shutdown(ctx)
					}

					return nil
				},
			})
		}),
	)
}

func showHelp() {
	fmt.Println("jsonfixer: repairs almost-JSON text")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  jsonfixer                           Start the server (default)")
	fmt.Println("  jsonfixer repair [--write] [files]  Repair files, or stdin when none are given")
	fmt.Println("  jsonfixer config preview            Preview configuration")
	fmt.Println("  jsonfixer config validate           Validate configuration")
	fmt.Println("  jsonfixer config get <key>          Get a specific config value")
	fmt.Println("  jsonfixer version                   Show version")
	fmt.Println("  jsonfixer build-info                Show build information")
	fmt.Println("  jsonfixer help                      Show this help message")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -f, --format FORMAT   Output format for config preview (yml, json)")
	fmt.Println("  -w, --write           Rewrite repaired files in place")
}

func showVersion() {
	fmt.Println(build.Version)
}
