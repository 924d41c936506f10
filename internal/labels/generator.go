package labels

// Generator owns the state of one label-generation session: the start code
// the session was opened with, the current batch, and the page being
// viewed. The start code is fixed at construction and reused for every
// regeneration within the session; callers wanting to continue from the
// board's latest issued barcode resolve that once, up front, and hand the
// result in here.
type Generator struct {
	startCode string
	batch     []Label
	page      int
}

// NewGenerator opens a generation session. An empty startCode numbers from
// the beginning of the barcode space.
func NewGenerator(startCode string) *Generator {
	return &Generator{startCode: startCode}
}

// StartCode returns the code the session numbers from.
func (g *Generator) StartCode() string {
	return g.startCode
}

// Generate expands rows into a fresh batch, replacing any previous one, and
// resets the view to the first page.
func (g *Generator) Generate(rows []Row) []Label {
	g.batch = Expand(rows, g.startCode)
	g.page = 0
	return g.Batch()
}

// Batch returns the current batch.
func (g *Generator) Batch() []Label {
	out := make([]Label, len(g.batch))
	copy(out, g.batch)
	return out
}

// TotalPages reports the page count of the current batch.
func (g *Generator) TotalPages() int {
	return TotalPages(len(g.batch))
}

// Page reports the 0-based page currently in view.
func (g *Generator) Page() int {
	return g.page
}

// PageLabels returns the labels on the page currently in view.
func (g *Generator) PageLabels() []Label {
	return PageSlice(g.batch, g.page)
}

// NextPage advances the view one page, reporting whether it moved. The
// view never advances past the last page.
func (g *Generator) NextPage() bool {
	if g.page >= g.TotalPages()-1 {
		return false
	}
	g.page++
	return true
}

// PrevPage moves the view back one page, reporting whether it moved.
func (g *Generator) PrevPage() bool {
	if g.page <= 0 {
		return false
	}
	g.page--
	return true
}
