// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import "github.com/stubgen-org/stubgen/cmd"

func main() {
	cmd.Execute()
}
