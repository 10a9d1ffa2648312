package main

import "nathanbeddoewebdev/homegrid/cmd"

func main() {
	cmd.Execute()
}
