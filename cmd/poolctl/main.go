// Command poolctl drives a block pool from the command line: it replays a
// sequence of allocate/free operations and reports the resulting layout.
package main

func main() {
	execute()
}
