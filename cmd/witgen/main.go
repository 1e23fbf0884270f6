package main

import (
	"fmt"
	"os"

	"github.com/teranos/witgen/cmd/witgen/commands"
	"github.com/teranos/witgen/errors"
	"github.com/teranos/witgen/logger"
)

func main() {
	err := commands.RootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode is 1 for out-of-date output and 2 for every other failure
func exitCode(err error) int {
	if errors.Is(err, errors.ErrOutOfDate) {
		return 1
	}
	return 2
}
