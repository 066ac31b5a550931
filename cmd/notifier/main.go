package main

import (
	"os"

	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/pickup-notifier/internal/cli"
)

func main() {
	zlog.Init()

	if err := cli.Execute(); err != nil {
		zlog.Logger.Error().Err(err).Msg("pickup-notifier failed")
		os.Exit(1)
	}
}
