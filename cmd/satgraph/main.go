package main

import (
	"fmt"
	"os"

	"github.com/teranos/satgraph/cmd/satgraph/commands"
	"github.com/teranos/satgraph/errors"
	"github.com/teranos/satgraph/logger"
)

func main() {
	defer logger.Cleanup()

	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
