package main

import (
	"fmt"
	"os"

	"github.com/valksor/go-upnote/cmd/upnote/commands"
	"github.com/valksor/go-upnote/internal/display"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, display.ErrorMsg("%v", err))
		os.Exit(1)
	}
}
