// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/hacs/hacs/cmd"
)

func main() {
	hacs, err := cmd.New(afero.NewOsFs())
	if err != nil {
		fmt.Printf("Failed to initialize the hacs command %s.\n", err)
		os.Exit(1)
	}

	if err := hacs.ExecuteContext(context.Background()); err != nil {
		fmt.Printf("Unexpected error %s.\n", err)
		os.Exit(1)
	}
}
