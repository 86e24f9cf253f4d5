package main

import "circulation/cmd"

func main() {
	cmd.Execute()
}
