// Package script implements a small line-oriented command language for
// driving a heap, used by heapctl and by tests that want to describe a
// sequence of allocator operations as text.
//
// # Syntax
//
// One command per line. Blank lines and lines starting with '#' are
// ignored; a '#' after a command starts a trailing comment.
//
//	init  <size>           initialize the heap with a region of size bytes
//	alloc <name> <size>    allocate size bytes and bind the result to name
//	fill  <name> <byte>    write byte to every payload byte of name
//	free  <name>           release the block bound to name
//	dump                   print the block list
//	check                  verify every arena invariant
//	stats                  print usage totals and operation counters
//
// Sizes and bytes accept Go integer literal syntax (42, 0x2a, 1_024).
// A name stays bound after free so that a second free of the same name
// exercises double-free detection.
//
// # Usage Example
//
//	ops, err := script.Parse(strings.NewReader("init 4096\nalloc a 100\ndump\n"))
//	if err != nil {
//	    return err
//	}
//	r := script.NewRunner(os.Stdout, script.DefaultOptions())
//	if err := r.Run(ops); err != nil {
//	    return err
//	}
package script
