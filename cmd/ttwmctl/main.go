// ttwmctl controls a running ttwm over its IPC socket.
package main

import "github.com/adereth/ttwm/cmd/ttwmctl/commands"

func main() {
	commands.Execute()
}
