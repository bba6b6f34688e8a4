package main

import "github.com/khanhdv/llm-cli/cmd"

func main() {
	cmd.Execute()
}
