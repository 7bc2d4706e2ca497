package main

import "heartrisk/cmd"

func main() {
	cmd.Execute()
}
