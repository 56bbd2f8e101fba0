package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.DefaultFactory).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
