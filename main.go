package main

import "acadsave/cmd"

func main() {
	cmd.Execute()
}
