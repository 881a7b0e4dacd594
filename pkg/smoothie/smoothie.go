package smoothie

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikesmitty/smoothie/pkg/mqtt"
	"github.com/mikesmitty/smoothie/pkg/router"
	"github.com/mikesmitty/smoothie/pkg/sma"
	"github.com/mikesmitty/smoothie/pkg/source"
	"github.com/mikesmitty/smoothie/pkg/stats"
	"github.com/mikesmitty/smoothie/pkg/watchdog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func Root() func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		slogOpts := slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		if viper.GetBool("debug") {
			slogOpts.Level = slog.LevelDebug
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slogOpts))
		slog.SetDefault(log)

		windowSize := viper.GetInt("window")
		strategy := viper.GetString("strategy")

		var avg sma.Average[float64]
		var err error
		if resync := viper.GetInt("resync-every"); strategy == "corrected" && resync > 0 {
			avg, err = sma.NewCorrectedEvery[float64](windowSize, resync)
		} else {
			avg, err = sma.New[float64](strategy, windowSize)
		}
		errChk(err)
		slog.Info("starting smoother", "strategy", strategy, "window", windowSize)

		st, err := stats.New(windowSize)
		errChk(err)

		ctx, cancelFunc := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
		defer cancelFunc()
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(-1)

		var srcCh <-chan float64
		var srcFn func() error
		switch viper.GetString("source") {
		case "synthetic":
			srcCh, srcFn = source.Synthetic(ctx, viper.GetDuration("interval"), viper.GetFloat64("amplitude"), viper.GetFloat64("noise"))
		default:
			srcCh, srcFn = source.Lines(ctx, os.Stdin)
		}
		slog.Debug("starting source")
		g.Go(srcFn)
		rawFan := router.NewFan[float64]("raw", srcCh)
		g.Go(rawFan.Run)

		smoothCh, smoothFn := Smooth(avg, rawFan.Subscribe("smoother"))
		slog.Debug("starting smoother")
		g.Go(smoothFn)
		smoothFan := router.NewFan[float64]("smoothed", smoothCh)
		g.Go(smoothFan.Run)

		stddevCh, stddevFn := Deviation(st, rawFan.Subscribe("stats"))
		slog.Debug("starting stats")
		g.Go(stddevFn)
		stddevFan := router.NewFan[float64]("stddev", stddevCh)
		g.Go(stddevFan.Run)

		g.Go(Printer(smoothFan.Subscribe("print"), stddevFan.Subscribe("print")))

		// MQTT
		if broker := viper.GetString("mqtt-broker"); broker != "" {
			mqttUrl, err := url.Parse(broker)
			errChk(err)
			mc := mqtt.NewClient(mqttUrl, viper.GetInt("mqtt-sample-interval"))
			errChk(mc.Connect())
			g.Go(mc.GetPublisher(rawFan.Subscribe("mqtt"), smoothFan.Subscribe("mqtt"), stddevFan.Subscribe("mqtt")))
		}

		// Watchdog
		watchdogTimeout := viper.GetDuration("watchdog-timeout")
		if watchdogTimeout > 0 {
			g.Go(watchdog.NewWatchdog(watchdogTimeout, rawFan.Subscribe("watchdog")))
		}

		slog.Debug("waiting for goroutines to finish")
		err = g.Wait()
		errChk(err)
	}
}

func errChk(err error) {
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
