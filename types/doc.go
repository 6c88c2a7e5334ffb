// Package types holds small generic helpers shared by the payload structs
// and the command line.
//
//	in.Name = types.ToPointer(name)
package types
