package compile

import (
	"bufio"
	"io"

	"github.com/npillmayer/xstyle/manifest"
)

// CSS writes the generated stylesheet: variable defaults on :root, followed
// by the atomic rules in order of definition. The stylesheet is rendered from
// the manifest, so it includes entries loaded from a saved manifest.
func (c *Compiler) CSS(w io.Writer) error {
	m := c.store.Read()
	bw := bufio.NewWriter(w)
	root := false
	for _, e := range m.All(manifest.KindVar) {
		v := e.(manifest.Var)
		if v.Default == "" {
			continue
		}
		if !root {
			bw.WriteString(":root {\n")
			root = true
		}
		bw.WriteString("  " + v.Ident + ": " + v.Default + ";\n")
	}
	if root {
		bw.WriteString("}\n")
	}
	for k, e := range m.All(manifest.KindAtom) {
		a := e.(manifest.Atom)
		bw.WriteString("." + k.Name + " { " + a.Property + ": " + a.Value + " }\n")
	}
	return bw.Flush()
}
