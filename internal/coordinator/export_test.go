package coordinator

// InFlight reports the number of computations currently registered.
func (c *Coordinator) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.flights)
}
