package utils

import (
	"flag"
	"fmt"
	"log"
	"strings"
)

type options struct {
	file         string
	verify       string
	outputFormat string
	task         string
	metrics      bool
	noColorize   bool
	verbose      bool
	visualize    bool
}

const (
	_REPLAY = iota
	_BUILD_ONLY
	_PRINT_TREE
	_TREE_TO_DOT
	_CFG_TO_DOT
)

const (
	_VERIFY_NONE = iota
	_VERIFY_BASIC
	_VERIFY_NORMAL
	_VERIFY_FULL
)

func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}

var task = []struct{ flag, explanation string }{{
	"replay",
	"Build the dominator tree and replay all deferred updates against it",
}, {
	"build-only",
	"Build the dominator tree for the initial graph and stop",
}, {
	"print-tree",
	"Build the tree, replay all updates and print the final tree",
}, {
	"tree-to-dot",
	"Create a dot graph for the final dominator tree",
}, {
	"cfg-to-dot",
	"Create a dot graph for the final control-flow graph",
}}

var verifyLevels = []struct{ flag, explanation string }{{
	"none",
	"Skip verification entirely",
}, {
	"basic",
	"Check levels and nearest common ancestor consistency",
}, {
	"normal",
	"Basic checks plus reachability, the parent property, and the oracle cross-check",
}, {
	"full",
	"All checks, including the quadratic sibling property",
}}

var opts options

type optInterface struct{}

// Opts exposes the parsed command line options.
func Opts() optInterface {
	return optInterface{}
}

type taskInterface struct{}

func (optInterface) Task() taskInterface {
	return taskInterface{}
}

func taskIs(i int) bool {
	return opts.task == task[i].flag
}

func (taskInterface) IsReplay() bool    { return taskIs(_REPLAY) }
func (taskInterface) IsBuildOnly() bool { return taskIs(_BUILD_ONLY) }
func (taskInterface) IsPrintTree() bool { return taskIs(_PRINT_TREE) }
func (taskInterface) IsTreeToDot() bool { return taskIs(_TREE_TO_DOT) }
func (taskInterface) IsCfgToDot() bool  { return taskIs(_CFG_TO_DOT) }

func (optInterface) File() string {
	return opts.file
}
func (optInterface) VerifyLevel() string {
	return opts.verify
}
func (optInterface) OutputFormat() string {
	return opts.outputFormat
}
func (optInterface) Metrics() bool {
	return opts.metrics
}
func (optInterface) NoColorize() bool {
	return opts.noColorize
}
func (optInterface) Verbose() bool {
	return opts.verbose
}
func (optInterface) Visualize() bool {
	return opts.visualize
}

func init() {
	taskFlag := "\n"
	for _, task := range task {
		taskFlag += task.flag + " -- " + task.explanation + "\n"
	}
	taskFlag += "\n"
	verifyFlag := "\n"
	for _, lvl := range verifyLevels {
		verifyFlag += lvl.flag + " -- " + lvl.explanation + "\n"
	}
	verifyFlag += "\n"

	flag.StringVar(&(opts.file), "file", "", "path to an input graph file in the p/a/e/i/d format")
	flag.StringVar(&(opts.verify), "verify", verifyLevels[_VERIFY_NORMAL].flag, "Set the verification level applied after construction and after every update. Options:"+verifyFlag)
	flag.StringVar(&(opts.outputFormat), "format", "svg", "output file format [svg | png | jpg | ...]")
	flag.StringVar(&(opts.task), "task", task[_REPLAY].flag, "Set the task to do during execution. Options:"+taskFlag)
	flag.BoolVar(&(opts.metrics), "metrics", false, "Enable collection of performance metrics for updates and verification")
	flag.BoolVar(&(opts.noColorize), "no-colorize", false, "Disable pretty printer colorization")
	flag.BoolVar(&(opts.verbose), "verbose", false, "enable verbose output")
	flag.BoolVar(&(opts.visualize), "visualize", false, "render dot output via the 'dot' program")

	// Set up logging
	log.SetFlags(log.Ltime | log.Lshortfile)
}

func ParseArgs() {
	// Calling flag.Parse in init messes up unit tests.
	// See https://stackoverflow.com/questions/60235896/flag-provided-but-not-defined-test-v
	flag.Parse()

	validTask := false
	for _, task := range task {
		if task.flag == opts.task {
			validTask = true
			break
		}
	}

	if !validTask {
		log.Fatalf("Value \"%s\" is not valid for -task", opts.task)
	}

	validVerify := false
	for _, lvl := range verifyLevels {
		if lvl.flag == opts.verify {
			validVerify = true
			break
		}
	}

	if !validVerify {
		log.Fatalf("Value \"%s\" is not valid for -verify", opts.verify)
	}

	if Opts().Task().IsCfgToDot() || Opts().Task().IsTreeToDot() {
		opts.noColorize = true
	}
}
