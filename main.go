package main

import (
	"os"

	"github.com/AlexK-Notable/zmk-config-offsetkey/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
