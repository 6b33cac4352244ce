package main

import (
	"github.com/framecut/framecut/cmd/framecut/cmd"
)

func main() {
	cmd.Execute()
}
