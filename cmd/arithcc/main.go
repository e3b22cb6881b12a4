// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"os"

	"github.com/ezrec/arithcc/cmd/arithcc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
