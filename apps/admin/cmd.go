package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	inmemdb "github.com/trezcool/wiseconnect/storage/database/inmem"
)

var (
	loadSeedFunc = inmemdb.LoadSeed // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  checkseed [-file PATH] - validate a seed file (the embedded seed when PATH is empty) and summarize it")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	checkSeedCmd := flag.NewFlagSet("checkseed", flag.ContinueOnError)
	checkSeedCmd.SetOutput(cli.out)
	checkSeedFile := checkSeedCmd.String("file", "", "The YAML seed file to check.")

	switch args[1] {
	case "checkseed":
		if err := checkSeedCmd.Parse(args[2:]); err != nil {
			if err == flag.ErrHelp {
				return errHelp
			}
			return err
		}
		return cli.checkSeed(*checkSeedFile)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) checkSeed(path string) error {
	seed, err := loadSeedFunc(path)
	if err != nil {
		return err
	}

	name := path
	if name == "" {
		name = "embedded seed"
	}
	fmt.Fprintf(cli.out, "%s is valid:\n", name)
	fmt.Fprintf(cli.out, "  questions: %d (%d options)\n", len(seed.Questions), len(seed.Options))
	fmt.Fprintf(cli.out, "  lessons:   %d (%d steps)\n", len(seed.Lessons), len(seed.Steps))
	fmt.Fprintf(cli.out, "  posts:     %d (%d replies)\n", len(seed.Posts), len(seed.Replies))
	return nil
}
