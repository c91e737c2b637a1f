package main

import "github.com/oshokin/bowl/cmd/bowl/cmd"

func main() {
	cmd.Execute()
}
