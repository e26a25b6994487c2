package main

import (
	"log"

	"github.com/slicekit/slicer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
