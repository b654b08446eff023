// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/textkit/cmd/textkit"

func main() {
	cmd.Execute()
}
