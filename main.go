package main

import "holiday-keeper/cmd"

func main() {
	cmd.Execute()
}
