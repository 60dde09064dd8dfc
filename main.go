package main

import "github.com/stashhq/stash/cmd"

func main() {
	cmd.Execute()
}
