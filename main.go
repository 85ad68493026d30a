package main

import "github.com/KaramelBytes/datainspect-cli/cmd"

func main() {
	cmd.Execute()
}
