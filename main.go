package main

import "github.com/shihabsss1/portfolio/cmd"

func main() {
	cmd.Execute()
}
