package main

import (
	"github.com/nikstur/uapi-version/pkg/cli"
)

func main() {
	cli.Execute()
}
