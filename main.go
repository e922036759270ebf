package main

import "github.com/KaramelBytes/dataqa-cli/cmd"

func main() {
	cmd.Execute()
}
