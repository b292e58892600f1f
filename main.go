package main

import (
	"os"

	"github.com/akshayb/jacpath/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
