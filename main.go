package main

import "github.com/minhnv203/toolvet/cmd"

// execCmd is indirected so tests can stub command execution.
var execCmd = cmd.Execute

func main() {
	execCmd()
}
