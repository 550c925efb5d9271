package main

import "student-sync/cmd"

func main() {
	cmd.Execute()
}
