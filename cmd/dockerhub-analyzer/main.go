package main

import "github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/cmd"

func main() {
	cmd.Execute()
}
