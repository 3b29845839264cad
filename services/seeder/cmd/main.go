package main

import "friender/services/seeder/command"

func main() {
	command.Execute()
}
