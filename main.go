package main

import "github.com/KaramelBytes/tempstat-cli/cmd"

func main() {
	cmd.Execute()
}
