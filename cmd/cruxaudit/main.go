// main is the entry point of the cruxaudit CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/cruxaudit/cmd"
	"github.com/huangsam/cruxaudit/core"
	"github.com/huangsam/cruxaudit/internal/contract"
)

func main() {
	err := cmd.Execute()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Error stopping profiling", perr)
	}
	if err == nil {
		return
	}

	var failed *core.AuditFailedError
	if errors.As(err, &failed) {
		fmt.Fprintf(os.Stderr, "❌ Audit failed with a %s error: %s\n", failed.Kind, failed.Message)
	} else {
		fmt.Fprintln(os.Stderr, "❌", err)
	}
	os.Exit(1)
}
