package markdown

// Cache memoizes Render by exact input text. It belongs to whoever displays
// a document and should be dropped or Reset when that document changes.
// It is not safe for concurrent use.
type Cache struct {
	entries map[string]StyledRun
	misses  int
}

// NewCache creates an empty render cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]StyledRun)}
}

// Render returns the cached run for raw, computing it on first use
func (c *Cache) Render(raw string) StyledRun {
	if run, ok := c.entries[raw]; ok {
		return run
	}
	run := Render(raw)
	c.entries[raw] = run
	c.misses++
	return run
}

// Len returns the number of cached inputs
func (c *Cache) Len() int {
	return len(c.entries)
}

// Misses returns how many times Render had to run the pipeline
func (c *Cache) Misses() int {
	return c.misses
}

// Reset drops every cached entry
func (c *Cache) Reset() {
	c.entries = make(map[string]StyledRun)
	c.misses = 0
}
