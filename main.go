package main

import "github.com/mj1618/a11y-bridge/cmd"

func main() {
	cmd.Execute()
}
