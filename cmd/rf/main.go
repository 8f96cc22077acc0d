package main

import (
	"fmt"
	"os"

	"github.com/HexmosTech/reqfile"
)

func main() {
	if err := reqfile.Main(&reqfile.Options{}); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
