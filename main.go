// Command pagestat reports text statistics for web pages, files and stdin.
package main

import "github.com/gaurav-prasanna/pagestat/cmd"

func main() {
	cmd.Execute()
}
