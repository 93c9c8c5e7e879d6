package main

import (
	"boscoin.io/rankchoice/cmd/rankchoice/cmd"
)

func main() {
	cmd.Execute()
}
