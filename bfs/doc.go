// Package bfs provides breadth-first search and connected components over a
// core.Graph.
//
// What
//
//   - BFS explores vertices in non-decreasing hop distance from a start
//     vertex and returns the visit order, depth and parent of every vertex.
//   - Components labels every vertex with the index of its connected
//     component and reports component sizes.
//   - LargestComponent returns the size of the giant component, the quantity
//     that changes regime around p = 1/n in G(n,p).
//
// Determinism
//
//	Neighbors are visited in ascending vertex order (the canonical edge order
//	of core.Graph), so visit order and component numbering are reproducible.
//	Components are numbered by their smallest vertex.
//
// Complexity (V = n, E = |edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V + E) for the adjacency index and queue
package bfs
