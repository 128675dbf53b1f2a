// cmd/main.go
package main

import cmd "github.com/mwiater/ollamasweep/cmd/ollamasweep"

// main starts the ollamasweep CLI by delegating to the cobra root command
// defined in the ollamasweep package.
func main() {
	cmd.Execute()
}
