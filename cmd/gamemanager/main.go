package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	GlobalFlags

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Board    BoardCmd         `cmd:"" help:"Run the interactive scoreboard"`
	Combos   CombosCmd        `cmd:"" help:"List the ways to score a points margin"`
	Table    TableCmd         `cmd:"" help:"Tabulate scoring combinations for a range of margins"`
	Kneel    KneelCmd         `cmd:"" help:"Simulate the leading team kneeling out the clock"`
	Stops    StopsCmd         `cmd:"" help:"Simulate defensive stops to get the ball back"`
	Settings ConfigCmd        `cmd:"" name:"config" help:"Manage the configuration file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gamemanager"),
		kong.Description("Game clock, scoreboard and end-of-game calculators for football"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.GlobalFlags)
	ctx.FatalIfErrorf(err)
}
