// Command graphsearch solves mazes and weighted graphs with depth-first,
// breadth-first, uniform-cost and A* search.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
