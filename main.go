package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"rebelcal/src-server/command"
	"rebelcal/src-server/utils"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      utils.ParseLogLevel(os.Getenv("LOG_LEVEL")),
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	if err := command.NewApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
