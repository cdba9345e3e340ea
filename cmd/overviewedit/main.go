package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kyaoi/overviewedit/internal/app"
)

func main() {
	opts, err := app.ParseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := app.Run(opts); err != nil {
		log.Fatal(err)
	}
}
