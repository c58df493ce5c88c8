// SPDX-License-Identifier: MIT

package matrix

import (
	"bufio"
	"io"
)

// PrintTree writes the expression rooted at d, one node per line:
//
//	Product 4x2 [unstarted]
//	├── Product 4x8 [unstarted]
//	│   ├── Dense 4x9
//	│   └── Dense 9x8
//	└── Dense 8x2
//
// Lazy nodes that already released their inputs print as leaves.
// Shared subtrees are printed once per reference.
func PrintTree(w io.Writer, d Describer) error {
	bw := bufio.NewWriter(w)
	printNode(bw, d, "", "")

	return bw.Flush()
}

func printNode(w *bufio.Writer, d Describer, lead, childLead string) {
	w.WriteString(lead)
	w.WriteString(d.Describe())
	w.WriteByte('\n')

	kids := d.Inputs()
	for k, c := range kids {
		if k == len(kids)-1 {
			printNode(w, c, childLead+"└── ", childLead+"    ")
		} else {
			printNode(w, c, childLead+"├── ", childLead+"│   ")
		}
	}
}
