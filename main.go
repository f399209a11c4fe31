package main

import "github.com/finfrenzy/finfrenzy/cmd"

func main() {
	cmd.Execute()
}
