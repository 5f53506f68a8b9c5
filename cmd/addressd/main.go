package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/groundfi/address-registry/cmd/flags"
	"github.com/groundfi/address-registry/common"
	"github.com/groundfi/address-registry/httpserver"
	"github.com/groundfi/address-registry/metrics"
)

func main() {
	app := &cli.App{
		Name:    "addressd",
		Usage:   "Serve Ground deployment addresses over HTTP and DNS",
		Version: common.Version,
		Flags: append([]cli.Flag{
			flags.ListenAddrFlag,
			flags.ManifestURIFlag,
			flags.PinFlag,
			flags.DNSAddrFlag,
			flags.DNSZoneFlag,
		}, flags.CommonFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)
			cfg := flags.ConfigureServer(cCtx, logger, cCtx.String(flags.ListenAddrFlag.Name))

			metricsSrv, err := metrics.New(common.PackageName, cfg.MetricsAddr)
			if err != nil {
				logger.Error("Failed to create metrics server", "err", err)
				return err
			}

			// Books are loaded once; a changed manifest takes effect on restart.
			reg, err := flags.LoadRegistry(cCtx, logger, metricsSrv)
			if err != nil {
				logger.Error("Failed to load address registry", "err", err)
				return err
			}

			for _, env := range reg.Environments() {
				book, err := reg.AddressBook(env)
				if err != nil {
					return err
				}
				logger.Info("Serving address book",
					"environment", env.String(),
					"records", book.Len(),
					"fingerprint", book.Fingerprint().String())
			}

			server, err := httpserver.New(cfg, reg, metricsSrv)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}
			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
