package markdown

// Render runs the full pipeline on agent-authored markdown:
// Parse(Transcode(raw)).
func Render(raw string) StyledRun {
	return Parse(Transcode(raw))
}
