// Command erpctl is a command-line client for the ERP REST API.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/erp/erpcore/internal/interfaces/client"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	var remote *client.RemoteError
	if !errors.As(err, &remote) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Error: %s: %s\n", remote.Code, remote.Message)
	for _, d := range remote.Details {
		fmt.Fprintf(w, "  %s: %s\n", d.Field, d.Message)
	}
}
