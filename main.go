package main

import (
	"log"

	"github.com/cs-au-dk/incdom/input"
	"github.com/cs-au-dk/incdom/utils"
)

var opts = utils.Opts()

func main() {
	utils.ParseArgs()

	if opts.File() == "" {
		log.Fatalln("No input graph given. Use -file to point at a p/a/e/i/d description.")
	}

	g, err := input.Load(opts.File())
	if err != nil {
		log.Fatalln("Failed to read input graph:", err)
	}

	result := runPipeline(g)
	secondaryTask(result)

	if result.failures > 0 {
		log.Fatalf("%d verification failure(s)", result.failures)
	}
}
