package main

import (
	"crdfix/cmd/cli/app/cmd"
)

func main() {
	cmd.Execute()
}
