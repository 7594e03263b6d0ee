package dot

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/goccy/go-graphviz"
)

// location of dot executable for converting from .dot to image formats
// it's usually at: /usr/bin/dot
var dotExe string

const tmplEdge = `{{define "edge" -}}
	{{printf "%q -> %q [ %s ]" .From .To .Attrs}}
{{- end}}`

const tmplNode = `{{define "node" -}}
	{{printf "%q [ %s ]" .ID .Attrs}}
{{- end}}`

const tmplGraph = `digraph {{or .Name "G"}} {
	label="{{.Title}}";
	labeljust="l";
	fontname="Arial";
	fontsize="14";
	rankdir="{{or .Options.rankdir "TB"}}";
	node [shape="box" style="filled" fillcolor="honeydew" fontname="Verdana" penwidth="1.0" margin="0.05,0.0"];

	{{range .Nodes}}
	{{template "node" .}}
	{{- end}}

	{{- range .Edges}}
	{{template "edge" .}}
	{{- end}}
}
`

type DotNode struct {
	ID    string
	Attrs DotAttrs
}

func (n *DotNode) String() string {
	return n.ID
}

type DotEdge struct {
	From  *DotNode
	To    *DotNode
	Attrs DotAttrs
}

type DotAttrs map[string]string

func (p DotAttrs) List() []string {
	l := []string{}
	for k, v := range p {
		l = append(l, fmt.Sprintf("%s=%q;", k, v))
	}
	return l
}

func (p DotAttrs) String() string {
	return strings.Join(p.List(), " ")
}

type DotGraph struct {
	Name    string
	Title   string
	Nodes   []*DotNode
	Edges   []*DotEdge
	Options map[string]string
}

func (g *DotGraph) WriteDot(w io.Writer) error {
	t := template.New("dot")
	t.Option("missingkey=zero") // Make missing map keys return the zero value of appropriate type
	for _, s := range []string{tmplNode, tmplEdge, tmplGraph} {
		if _, err := t.Parse(s); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, g); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// dotToImageExe renders via the external 'dot' program.
func dotToImageExe(outfname string, format string, dot []byte) (string, error) {
	img := fmt.Sprintf("%s.%s", outfname, format)
	cmd := exec.Command(dotExe, fmt.Sprintf("-T%s", format), "-o", img)
	cmd.Stdin = bytes.NewReader(dot)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command '%v': %v\n%v", cmd, err, stderr.String())
	}
	return img, nil
}

// dotToImageGraphviz renders in-process via go-graphviz, for systems
// without a graphviz installation.
func dotToImageGraphviz(outfname string, format string, dot []byte) (string, error) {
	g := graphviz.New()
	graph, err := graphviz.ParseBytes(dot)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := graph.Close(); err != nil {
			log.Fatal(err)
		}
		g.Close()
	}()
	img := fmt.Sprintf("%s.%s", outfname, format)
	if err := g.RenderFilename(graph, graphviz.Format(format), img); err != nil {
		return "", err
	}
	return img, nil
}

// DotToImage renders the given dot source into an image file and returns its
// path. The textual dot source is kept next to the image.
func DotToImage(outfname string, format string, dot []byte) (string, error) {
	if outfname == "" {
		outfname = filepath.Join(os.TempDir(), "incdom_export")
	}

	dotpath := outfname + ".dot"
	if err := os.WriteFile(dotpath, dot, 0644); err != nil {
		return "", err
	}
	fmt.Printf("Exported dot graph to %s\n", dotpath)

	if dotExe == "" {
		if exe, err := exec.LookPath("dot"); err == nil {
			dotExe = exe
		}
	}
	if dotExe != "" {
		return dotToImageExe(outfname, format, dot)
	}
	return dotToImageGraphviz(outfname, format, dot)
}
