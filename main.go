package main

import (
	"os"

	"github.com/chris-regnier/moodiary/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
