package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kaliagent/kaliagent/cmd/kaliagent/commands"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := commands.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
