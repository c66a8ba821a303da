package main

import "farm-cms/cmd"

func main() {
	cmd.Execute()
}
