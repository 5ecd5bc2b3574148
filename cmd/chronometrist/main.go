// main is the entry point for the chronometrist CLI.
package main

import (
	"github.com/huangsam/chronometrist/cmd"
	"github.com/huangsam/chronometrist/internal/contract"
)

func main() {
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Cannot run command", err)
	}
}
