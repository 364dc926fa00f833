package tree

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/pbanos/sapling/feature"
)

const reportIndent = "    "

/*
WriteReport takes an io.Writer and a node and writes onto the writer a
human readable report of the subtree under the node. For internal nodes
the report presents the subtree for samples with a true value for the
node's attribute under an "<attribute> = True:" line and the subtree for
the rest under an "<attribute> = False:" line, indenting both. Leaves are
presented with their classifier and probability as a percentage.
*/
func WriteReport(w io.Writer, n Node) error {
	return writeReport(w, n, "")
}

// Report returns the report WriteReport would write for the given node.
func Report(n Node) string {
	buf := &bytes.Buffer{}
	writeReport(buf, n, "")
	return buf.String()
}

func writeReport(w io.Writer, n Node, indent string) error {
	switch node := n.(type) {
	case *Leaf:
		_, err := fmt.Fprintf(w, "%sCategory %s, prob = %s\n", indent, node.Classifier(), Percentage(node.Probability()))
		return err
	case *Internal:
		for _, v := range []bool{true, false} {
			_, err := fmt.Fprintf(w, "%s%v:\n", indent, feature.NewCriterion(node.attribute, v))
			if err != nil {
				return err
			}
			err = writeReport(w, node.Child(v), indent+reportIndent)
			if err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown node type %T", n)
	}
}

// Percentage formats a fraction in [0,1] as a whole percentage, rounding
// halves up.
func Percentage(p float64) string {
	return fmt.Sprintf("%.0f%%", math.Round(p*100))
}
