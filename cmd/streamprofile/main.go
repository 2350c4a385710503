package main

import (
	"fmt"
	"os"

	"github.com/chrissnell/streamprofile/internal/log"
)

func main() {
	root := newRootCmd()
	err := root.Execute()
	log.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
