package main

import "syncsweep/cmd"

func main() {
	cmd.Execute()
}
