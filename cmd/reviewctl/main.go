package main

import "bookreviews/cmd/reviewctl/command"

func main() {
	command.Execute()
}
