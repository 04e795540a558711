package main

import "github.com/hearthplan/household-calendar-api/cmd/calctl/commands"

func main() {
	commands.Execute()
}
