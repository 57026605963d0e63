package main

import "synchub/cmd"

func main() {
	cmd.Execute()
}
