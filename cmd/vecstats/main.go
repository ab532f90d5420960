// Command vecstats exposes each sequence reduction as an independent
// subcommand over a parquet column or an inline value list.
package main

import (
	"fmt"
	"os"

	"github.com/gravitational/trace"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	app := kingpin.New("vecstats", "Sequence reduction toolkit")
	app.HelpFlag.Short('h')
	debug := app.Flag("debug", "Enable verbose logging").Bool()

	commands := registerCommands(app)

	selected, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	if err := commands.run(selected); err != nil {
		log.Debug(trace.DebugReport(err))
		fmt.Fprintln(os.Stderr, "error:", trace.UserMessage(err))
		os.Exit(1)
	}
}
