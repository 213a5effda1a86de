// mistype synthesizes realistic type-annotation bugs in Python codebases.
package main

import "github.com/mouse-blink/mistype/cmd"

func main() {
	cmd.Execute()
}
