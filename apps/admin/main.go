package main

import (
	"os"

	"github.com/trezcool/wiseconnect/core"
	logsvc "github.com/trezcool/wiseconnect/services/logger"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewStdLogger(conf).WithField("component", "ADMIN")

	cli := commandLine{out: os.Stdout}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.WithError(err).Error("command failed")
		}
		os.Exit(1)
	}
}
