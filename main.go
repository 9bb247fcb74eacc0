package main

import "github.com/KaramelBytes/energystat-cli/cmd"

func main() {
	cmd.Execute()
}
