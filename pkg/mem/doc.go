/*
Package mem provides a process-wide heap with a four-call API.

# Quick Start

	if err := mem.Init(4096); err != nil {
	    log.Fatal(err)
	}
	ref, err := mem.Alloc(100)
	if err != nil {
	    log.Fatal(err)
	}
	buf, _ := mem.Bytes(ref)
	copy(buf, "hello")
	_ = mem.Free(ref)
	_ = mem.Dump()

# Semantics

Init may succeed at most once per process. Later calls return
alloc.ErrAlreadyInitialized and leave the existing heap untouched. A failed
Init (bad size, reservation failure) does not count and may be retried.

Calls are serialized with a mutex, so the package functions are safe to use
from several goroutines. Code that wants its own heap, or more than one,
should use heap/alloc directly.
*/
package mem
