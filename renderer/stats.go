package renderer

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteStats renders a table with the backend id, grid size and the
// timings of the last trace and shading pass.
func (r *Renderer) WriteStats(w io.Writer) {
	stats := r.tr.Stats()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Backend", "Grid", "Trace time", "Frame time"})
	table.Append([]string{
		r.tr.Id(),
		fmt.Sprintf("%dx%d", r.params.Width, r.params.Height),
		stats.TraceTime.String(),
		stats.FrameTime.String(),
	})
	table.Render()
}
