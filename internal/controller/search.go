package controller

// SetSearch records the search term and re-renders the table from the loaded
// page once input has been quiet for SearchDebounce. It never blocks and
// never touches the network, so it is safe to call from a UI event loop.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.searchTerm = term
	if c.searchTimer != nil {
		c.searchTimer.Stop()
	}
	c.searchTimer = c.clock.AfterFunc(SearchDebounce, c.applySearch)
}

func (c *Controller) applySearch() {
	c.mu.Lock()
	c.searchTimer = nil
	filtered := filterItems(c.allItems, c.searchTerm)
	c.mu.Unlock()

	c.view.RenderTable(filtered)
}
