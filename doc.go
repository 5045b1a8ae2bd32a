// Package gophys is a 3D rigid-body physics engine: fixed-timestep
// integration, broadphase/narrowphase collision detection over sphere,
// plane, box, convex hull, heightfield, trimesh and particle shapes, a
// sequential-impulse (SPOOK/PGS) constraint solver, raycasting, and a
// World that ties them together with sleep management and collision
// events.
package gophys
