package main

import (
	"os"

	"github.com/doctorq/doctorq-sdk/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
