package main

import "github.com/theirongolddev/glidepath/cmd"

func main() {
	cmd.Execute()
}
