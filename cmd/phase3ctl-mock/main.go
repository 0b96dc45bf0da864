package main

import (
	"os"

	"github.com/lydakis/phase3ctl/internal/cli"
)

func main() {
	os.Exit(cli.RunMock(os.Args[1:]))
}
