// Package forcefield provides the scalar force laws and their matching
// potentials used to specify cell-cell and cavity-cell interactions.
//
// Every law maps a non-negative pairwise distance to a signed force
// magnitude under a single convention: positive is repulsive, applied
// to a particle along the unit vector pointing away from its partner.
// Potentials satisfy F = -dE/dd and exist for inspection and plotting
// only; the integration loop never evaluates them.
package forcefield
