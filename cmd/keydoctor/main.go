package main

import (
	"os"

	"gemini-keydoctor/cmd/keydoctor/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
