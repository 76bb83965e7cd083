package main

import "github.com/iksnae/deepseek-export/cmd"

func main() {
	cmd.Execute()
}
