// Package gui shows a running simulation in a raylib window. Particles are
// drawn as filled disks in their own color, alpha particles with a ring.
package gui
