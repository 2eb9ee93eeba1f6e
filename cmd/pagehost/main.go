package main

import "github.com/dvloasia/pagehost/internal/cli/cmd"

func main() {
	cmd.Execute()
}
