package main

import "github.com/shiftwise/planning-api/cmd"

func main() {
	cmd.Execute()
}
