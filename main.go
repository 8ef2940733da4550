package main

import "github.com/Rorical/RoriRoast/cmd"

func main() {
	cmd.Execute()
}
