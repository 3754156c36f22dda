// Command heapctl drives a best-fit heap from scripts and prints its block
// list and counters.
package main

func main() {
	execute()
}
