package main

import (
	"os"

	embedvizcmder "github.com/embedviz/embedviz/cmd/embedviz"
)

func main() {
	cmd := embedvizcmder.NewEmbedvizCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
