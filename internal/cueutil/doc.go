// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema.
//
// Unify runs the three steps shared by every CUE-backed file in textkit:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with the schema definition
//  3. Validate the result
//
// Callers decode the returned value themselves, either into a struct or
// into a map that is merged into viper.
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	unified, err := cueutil.Unify(schema, data, "#Config",
//	    cueutil.WithFilename(path),
//	    cueutil.WithConcrete(false),
//	)
//	if err != nil {
//	    return err // error carries the CUE path of the offending field
//	}
package cueutil
