package util

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nilotpaul/spaboot/setting"
)

var logOutput io.Writer = os.Stdout

// Log writes a single "3:04:05 PM [source] message" line to stdout.
// source defaults to setting.DefaultLogSource.
func Log(message string, source ...string) {
	src := setting.DefaultLogSource
	if len(source) > 0 && len(source[0]) > 0 {
		src = source[0]
	}

	fmt.Fprintf(logOutput, "%s [%s] %s\n", time.Now().Format("3:04:05 PM"), src, message)
}
