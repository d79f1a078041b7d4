package chart

// RenderLegend draws the shared color legend to outputPath. It does not
// depend on any input file.
func (r *Renderer) RenderLegend(outputPath string) error {
	return r.RenderSpec(LegendSpec(), outputPath)
}
