package main

import "github.com/diogo/chatshell/internal/commands"

func main() {
	commands.Execute()
}
