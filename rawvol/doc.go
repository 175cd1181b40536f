/*
	Package rawvol provides types, constants, and functions that have no other dependencies
	and can be used by all packages within rawvol.  This includes scalar kinds, points and
	extents, byte order handling, error kinds, logging and serialization of read volumes.
	Since these elements are used by the naming, storage, and reader layers, we keep them
	here and allow reuse in layer-specific types.
*/
package rawvol
