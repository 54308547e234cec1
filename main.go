package main

import "github.com/notargets/gomacflow/cmd"

func main() {
	cmd.Execute()
}
