package main

import (
	"os"

	"blog-api/cmd/internal/cli"
)

var version = "dev"

// @title           Blog API
// @version         1.0
// @description     CRUD API for blog posts
// @BasePath        /
func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
