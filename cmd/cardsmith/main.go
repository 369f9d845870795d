// cmd/cardsmith/main.go
package main

import (
	cmd "cardsmith/internal/cli"
)

// main starts the cardsmith CLI application by delegating to the
// cobra root command defined in the cardsmith package.
func main() {
	cmd.Execute()
}
