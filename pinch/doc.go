/*
Package pinch detects and resolves pinch vertices of planar quad meshes.

A pinch is a vertex where two otherwise disjoint groups of faces touch
through a single point, the "bowtie" configuration. Resolution either
connects the two groups by filling the empty quadrants around the vertex
(ConnectPinch) or separates them by rebuilding the touching faces so they
no longer share the vertex (SeparatePinch). MakeManifold chooses between
the two for every group of adjacent pinches.

The package also rebuilds thin connections between components of a
sculpted mesh along boundary vertex paths of its background grid
(ConnectByVertexPath, BridgeComponents).

Resolvers operate on the Mesh interface and write to a QuadMesh. New
positions are deduplicated with a LocationIndex.
*/
package pinch
