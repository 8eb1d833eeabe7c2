package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-linktags/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "linktag: %v\n", err)
		os.Exit(1)
	}
}
