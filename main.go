// Entry point; CLI handling lives in the cobra commands under cmd/.
package main

import (
	"q.log/tableau/cmd"
)

func main() {
	cmd.Execute()
}
