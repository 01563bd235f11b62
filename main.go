package main

import (
	"fmt"
	"os"

	"github.com/TirthGada/FinSearch-Deep-RL-for-stock-trading/cmd"
)

func main() {
	if err := cmd.RootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
