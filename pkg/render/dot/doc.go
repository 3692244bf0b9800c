// Package dot renders a var dependency graph as a Graphviz node-link diagram.
//
// # Usage
//
// Convert a graph to DOT source, then optionally render it to SVG:
//
//	src := dot.ToDOT(g, dot.Options{Cycles: dag.FindCycles(g)})
//	svg, err := dot.RenderSVG(ctx, src)
//
// # Styling
//
// Installed packages are white boxes, dependencies no installed package
// satisfies are red dashed boxes, and presets are yellow notes. Edges that
// lie on a reported cycle are drawn red. With Detailed set, node labels
// carry their metadata and edges whose dependency name differs from the
// target package are labelled with the name as written.
//
// # Dependencies
//
// SVG rendering runs in-process through [github.com/goccy/go-graphviz].
package dot
