// Package render turns match responses into result nodes and formats them
// for the terminal or as an HTML page.
package render

// Node is one element of a results view.
type Node interface {
	node()
}

// Heading is the results title.
type Heading struct {
	Text string
}

// Card is one artwork with fallbacks already applied.
type Card struct {
	Title    string
	Artist   string
	Year     string
	Medium   string
	Price    string
	ImageURL string
}

// ArtworkList holds cards in response order.
type ArtworkList struct {
	Cards []Card
}

// Placeholder stands in for an empty section.
type Placeholder struct {
	Section string
	Text    string
}

// CompositeImage is the server-generated wall preview.
type CompositeImage struct {
	Title   string
	DataURL string
}

// ResetButton restores the initial form when activated.
type ResetButton struct {
	Activate func()
	Label    string
}

func (Heading) node()        {}
func (ArtworkList) node()    {}
func (Placeholder) node()    {}
func (CompositeImage) node() {}
func (ResetButton) node()    {}

// Section names used by placeholders.
const (
	SectionArtworks  = "artworks"
	SectionComposite = "composite"
)

// Container receives rendered nodes.
type Container interface {
	Clear()
	Append(n Node)
}

// Buffer is an in-memory Container.
type Buffer struct {
	nodes []Node
}

// Clear removes all nodes.
func (b *Buffer) Clear() {
	b.nodes = nil
}

// Append adds a node.
func (b *Buffer) Append(n Node) {
	b.nodes = append(b.nodes, n)
}

// Nodes returns a copy of the nodes in order.
func (b *Buffer) Nodes() []Node {
	out := make([]Node, len(b.nodes))
	copy(out, b.nodes)
	return out
}

// Len returns the number of nodes.
func (b *Buffer) Len() int {
	return len(b.nodes)
}

// Composite returns the composite image node, if rendered.
func (b *Buffer) Composite() (CompositeImage, bool) {
	for _, n := range b.nodes {
		if c, ok := n.(CompositeImage); ok {
			return c, true
		}
	}
	return CompositeImage{}, false
}

// Reset activates the reset button. It returns false when none was rendered.
func (b *Buffer) Reset() bool {
	for _, n := range b.nodes {
		if r, ok := n.(ResetButton); ok && r.Activate != nil {
			r.Activate()
			return true
		}
	}
	return false
}
