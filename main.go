package main

import "chogo/cmd"

func main() {
	cmd.Execute()
}
