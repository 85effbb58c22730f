package main

import "ironrod/dash/cmd"

func main() {
	cmd.Execute()
}
