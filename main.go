package main

import (
	"os"

	"github.com/MONSTERBOY110/Twindex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
