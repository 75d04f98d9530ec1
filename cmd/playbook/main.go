package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr, nil).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "playbook: %v\n", err)
		os.Exit(1)
	}
}
