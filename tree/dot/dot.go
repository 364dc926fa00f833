/*
Package dot renders trees as Graphviz digraphs in the DOT language.
*/
package dot

import (
	"fmt"
	"io"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/pbanos/sapling/tree"
)

const graphName = "G"

/*
WriteDOTTree takes an io.Writer and a pointer to a tree.Tree and writes
onto the writer a DOT digraph for the tree. Internal nodes are labeled with
their attribute and leaves with their classifier and probability. Edges are
labeled with the attribute value samples must have to descend through them.
*/
func WriteDOTTree(w io.Writer, t *tree.Tree) error {
	graph, err := Graph(t)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, graph.String())
	return err
}

/*
Graph takes a pointer to a tree.Tree and returns a gographviz graph
with a node per tree node, identified by its position in a depth-first
traversal of the tree.
*/
func Graph(t *tree.Tree) (*gographviz.Graph, error) {
	graphAst, err := gographviz.Parse([]byte(`digraph G{}`))
	if err != nil {
		return nil, err
	}
	graph := gographviz.NewGraph()
	err = gographviz.Analyse(graphAst, graph)
	if err != nil {
		return nil, err
	}
	var count int
	_, err = addNode(graph, t.Root(), &count)
	if err != nil {
		return nil, fmt.Errorf("building DOT graph: %v", err)
	}
	return graph, nil
}

func addNode(graph *gographviz.Graph, n tree.Node, count *int) (string, error) {
	id := fmt.Sprintf("n%d", *count)
	*count++
	switch n := n.(type) {
	case *tree.Leaf:
		label := fmt.Sprintf("%s\n%s", n.Classifier(), tree.Percentage(n.Probability()))
		return id, graph.AddNode(graphName, id, map[string]string{
			"label": strconv.Quote(label),
			"shape": "box",
		})
	case *tree.Internal:
		err := graph.AddNode(graphName, id, map[string]string{"label": strconv.Quote(n.Attribute().Name())})
		if err != nil {
			return "", err
		}
		for _, v := range []bool{true, false} {
			childID, err := addNode(graph, n.Child(v), count)
			if err != nil {
				return "", err
			}
			err = graph.AddEdge(id, childID, true, map[string]string{"label": strconv.Quote(strconv.FormatBool(v))})
			if err != nil {
				return "", err
			}
		}
		return id, nil
	}
	return "", fmt.Errorf("unknown node type %T", n)
}
