package main

import (
	"bytes"
	"log"
	"os"

	"github.com/cs-au-dk/incdom/cfg"
	"github.com/cs-au-dk/incdom/utils/dot"
)

// secondaryTask runs the output task selected with -task after the pipeline
// completes.
func secondaryTask(r *pipelineResult) {
	task := opts.Task()
	switch {
	case task.IsPrintTree():
		r.tree.Print(os.Stdout)
		if opts.Verbose() {
			r.tree.DumpIDoms(os.Stdout)
			r.tree.DumpLevels(os.Stdout)
			r.tree.DumpRDoms(os.Stdout)
		}
	case task.IsTreeToDot():
		writeDot(r.tree.ToDotGraph(), "domtree")
	case task.IsCfgToDot():
		writeDot(cfg.ToDotGraph(r.entry), "cfg")
	}
}

func writeDot(g *dot.DotGraph, basename string) {
	var buf bytes.Buffer
	if err := g.WriteDot(&buf); err != nil {
		log.Fatalln("Failed to serialize dot graph:", err)
	}

	if !opts.Visualize() {
		os.Stdout.Write(buf.Bytes())
		return
	}

	img, err := dot.DotToImage(basename, opts.OutputFormat(), buf.Bytes())
	if err != nil {
		log.Fatalln("Failed to render dot graph:", err)
	}
	log.Println("Rendered", img)
}
