package main

import "github.com/inkwell/publishing-api/cmd"

func main() {
	cmd.Execute()
}
