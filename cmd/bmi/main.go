package main

import "bmi-tracker/cmd/bmi/commands"

func main() {
	commands.Execute()
}
