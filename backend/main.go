package main

import "readquest/backend/cmd"

func main() {
	cmd.Execute()
}
