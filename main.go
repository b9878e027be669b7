package main

import "github.com/GAJENDER439/Low-Quality-Tester/cmd"

func main() {
	cmd.Execute()
}
