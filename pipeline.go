package main

import (
	"fmt"
	"log"
	"time"

	"github.com/cs-au-dk/incdom/cfg"
	"github.com/cs-au-dk/incdom/domtree"
	"github.com/cs-au-dk/incdom/input"
	"github.com/cs-au-dk/incdom/utils"

	"github.com/fatih/color"
)

type pipelineResult struct {
	graph    *input.InputGraph
	entry    *cfg.Block
	tree     *domtree.DomTree[*cfg.Block]
	metrics  updateMetrics
	failures int
}

func verificationMask() domtree.Verification {
	switch opts.VerifyLevel() {
	case "none":
		return domtree.VerifyNone
	case "basic":
		return domtree.VerifyBasic
	case "full":
		return domtree.VerifyFull
	default:
		return domtree.VerifyNormal
	}
}

// runPipeline builds the CFG and the dominator tree for the parsed input
// graph, then replays its deferred updates, verifying after every step.
func runPipeline(g *input.InputGraph) *pipelineResult {
	if opts.Metrics() {
		defer utils.TimeTrack(time.Now(), "pipeline")
	}

	res := &pipelineResult{graph: g}
	mask := verificationMask()

	log.Printf("Input graph: %d nodes, %d initial arcs, %d deferred updates, %d weakly connected components",
		g.NodesNum, len(g.Arcs), len(g.Updates), g.Components())

	res.entry = g.ToCFG()
	if opts.Verbose() {
		fmt.Println(cfg.PrintFrom(res.entry))
	}

	start := time.Now()
	res.tree = domtree.New(cfg.Graph(), res.entry)
	res.metrics.constructionTime = time.Since(start)

	if !res.tree.Verify(mask) {
		res.failures++
		log.Println(color.RedString("Initial construction failed verification"))
	}

	if opts.Task().IsBuildOnly() {
		res.metrics.report()
		return res
	}

	for {
		upd, ok := g.ApplyUpdate()
		if !ok {
			break
		}

		utils.VerbosePrint("%s %s -> %s\n", upd.Action, upd.From.Name(), upd.To.Name())

		start = time.Now()
		if upd.Action == input.Insert {
			res.tree.InsertArc(upd.From, upd.To)
			res.metrics.inserts++
		} else {
			res.tree.DeleteArc(upd.From, upd.To)
			res.metrics.deletes++
		}
		res.metrics.updateTime += time.Since(start)

		start = time.Now()
		if !res.tree.Verify(mask) {
			res.failures++
			log.Println(color.RedString(fmt.Sprintf("Verification failed after %s %s -> %s",
				upd.Action, upd.From.Name(), upd.To.Name())))
		}
		res.metrics.verifyTime += time.Since(start)
	}

	res.metrics.report()
	return res
}
