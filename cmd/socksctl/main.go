package main

import (
	"os"

	"github.com/jhoicas/socks-api/cmd/socksctl/commands"
)

// CLI de operación del almacén: go run ./cmd/socksctl [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
